package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

// Repository репозиторий синхронизированных событий внешних календарей (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBlockingEvents получает блокирующие, не однодневные, синхронизированные события
// активных интеграций участника, пересекающиеся с интервалом [start, end)
func (r *Repository) ListBlockingEvents(ctx context.Context, memberID int64, start, end time.Time) ([]domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"i.member_id",
		"e.event_title",
		"e.start_datetime",
		"e.end_datetime",
		"e.is_all_day",
		"e.is_blocking_availability",
		"e.event_type",
		"e.sync_status",
	).
		From("calendar_events e").
		Join("calendar_integrations i ON i.id = e.integration_id").
		Where(squirrel.Eq{
			"i.member_id":                memberID,
			"i.is_active":                true,
			"e.is_blocking_availability": true,
			"e.is_all_day":               false,
			"e.sync_status":              domain.SyncStatusSynced,
		}).
		Where(squirrel.Lt{"e.start_datetime": end}).
		Where(squirrel.Gt{"e.end_datetime": start}).
		OrderBy("e.start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingEvents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.CalendarEvent, 0)
	for rows.Next() {
		var e domain.CalendarEvent
		var title, eventType sql.NullString
		if err := rows.Scan(
			&e.ID,
			&e.MemberID,
			&title,
			&e.StartDatetime,
			&e.EndDatetime,
			&e.IsAllDay,
			&e.IsBlockingAvailability,
			&eventType,
			&e.SyncStatus,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBlockingEvents - scan row: %v", ErrScanRow, err)
		}
		e.Title = title.String
		e.EventType = eventType.String
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockingEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
