package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Repository репозиторий заблокированных интервалов участников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByMemberAndDate получает блокировки участника на дату, упорядоченные по началу
func (r *Repository) ListByMemberAndDate(ctx context.Context, memberID int64, date time.Time) ([]domain.BlockedSlot, error) {
	day := types.DateOnly(date)
	return r.list(ctx, "ListByMemberAndDate", memberID, day, day)
}

// ListByMember получает блокировки участника в диапазоне дат включительно
func (r *Repository) ListByMember(ctx context.Context, memberID int64, from, to time.Time) ([]domain.BlockedSlot, error) {
	return r.list(ctx, "ListByMember", memberID, types.DateOnly(from), types.DateOnly(to))
}

func (r *Repository) list(ctx context.Context, op string, memberID int64, from, to time.Time) ([]domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"member_id",
		"blocked_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_slots").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		Where(squirrel.LtOrEq{"blocked_date": to}).
		OrderBy("blocked_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]domain.BlockedSlot, 0)
	for rows.Next() {
		var slot domain.BlockedSlot
		var createdAt sql.NullTime
		if err := rows.Scan(
			&slot.ID,
			&slot.MemberID,
			&slot.BlockedDate,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		slot.CreatedAt = createdAt.Time
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("member_id", "blocked_date", "start_time", "end_time", "reason").
		Values(slot.MemberID, types.DateOnly(slot.BlockedDate), slot.StartTime, slot.EndTime, slot.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// Delete удаляет блокировку участника
func (r *Repository) Delete(ctx context.Context, memberID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": slotID, "member_id": memberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}
