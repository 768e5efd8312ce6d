package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Repository репозиторий правил доступности и исключений на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDefaultRule получает действующее правило участника.
// Если правил несколько, побеждает помеченное is_default, затем самое раннее.
func (r *Repository) GetDefaultRule(ctx context.Context, memberID int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"member_id",
		"name",
		"is_default",
		"buffer_time_before",
		"buffer_time_after",
		"max_bookings_per_day",
		"max_bookings_per_week",
		"min_notice_hours",
		"max_days_advance",
		"created_at",
		"updated_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("is_default DESC", "id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaultRule - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.AvailabilityRule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.MemberID,
		&rule.Name,
		&rule.IsDefault,
		&rule.BufferTimeBefore,
		&rule.BufferTimeAfter,
		&rule.MaxBookingsPerDay,
		&rule.MaxBookingsPerWeek,
		&rule.MinNoticeHours,
		&rule.MaxDaysAdvance,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaultRule - scan rule: %v", ErrScanRow, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// CreateRule создает правило доступности
func (r *Repository) CreateRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"member_id",
			"name",
			"is_default",
			"buffer_time_before",
			"buffer_time_after",
			"max_bookings_per_day",
			"max_bookings_per_week",
			"min_notice_hours",
			"max_days_advance",
		).
		Values(
			rule.MemberID,
			rule.Name,
			rule.IsDefault,
			rule.BufferTimeBefore,
			rule.BufferTimeAfter,
			rule.MaxBookingsPerDay,
			rule.MaxBookingsPerWeek,
			rule.MinNoticeHours,
			rule.MaxDaysAdvance,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// UpdateRule обновляет лимиты и буферы правила
func (r *Repository) UpdateRule(ctx context.Context, rule *domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("name", rule.Name).
		Set("is_default", rule.IsDefault).
		Set("buffer_time_before", rule.BufferTimeBefore).
		Set("buffer_time_after", rule.BufferTimeAfter).
		Set("max_bookings_per_day", rule.MaxBookingsPerDay).
		Set("max_bookings_per_week", rule.MaxBookingsPerWeek).
		Set("min_notice_hours", rule.MinNoticeHours).
		Set("max_days_advance", rule.MaxDaysAdvance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// ListOverridesForDate получает исключения на дату по всем правилам участника
func (r *Repository) ListOverridesForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.DateOverride, error) {
	return r.listOverrides(ctx, "ListOverridesForDate", squirrel.And{
		squirrel.Eq{"r.member_id": memberID},
		squirrel.Eq{"o.override_date": types.DateOnly(date)},
	})
}

// ListOverridesFrom получает исключения правила начиная с даты (для отображения)
func (r *Repository) ListOverridesFrom(ctx context.Context, ruleID int64, from time.Time) ([]domain.DateOverride, error) {
	return r.listOverrides(ctx, "ListOverridesFrom", squirrel.And{
		squirrel.Eq{"o.rule_id": ruleID},
		squirrel.GtOrEq{"o.override_date": types.DateOnly(from)},
	})
}

func (r *Repository) listOverrides(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"o.id",
		"o.rule_id",
		"o.override_date",
		"o.available",
		"o.custom_hours_start",
		"o.custom_hours_end",
		"o.reason",
	).
		From("date_overrides o").
		Join("availability_rules r ON r.id = o.rule_id").
		Where(where).
		OrderBy("o.override_date ASC", "o.custom_hours_start ASC NULLS FIRST", "o.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	overrides := make([]domain.DateOverride, 0)
	for rows.Next() {
		var o domain.DateOverride
		if err := rows.Scan(
			&o.ID,
			&o.RuleID,
			&o.Date,
			&o.Available,
			&o.CustomHoursStart,
			&o.CustomHoursEnd,
			&o.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return overrides, nil
}

// AddOverride добавляет исключение на дату
func (r *Repository) AddOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("rule_id", "override_date", "available", "custom_hours_start", "custom_hours_end", "reason").
		Values(
			override.RuleID,
			types.DateOnly(override.Date),
			override.Available,
			override.CustomHoursStart,
			override.CustomHoursEnd,
			override.Reason,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&override.ID); err != nil {
		return nil, fmt.Errorf("%w: AddOverride - execute insert: %v", ErrExecQuery, err)
	}

	return override, nil
}

// DeleteOverride удаляет исключение, принадлежащее правилу участника
func (r *Repository) DeleteOverride(ctx context.Context, memberID, overrideID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"id": overrideID}).
		Where(squirrel.Expr("rule_id IN (SELECT id FROM availability_rules WHERE member_id = ?)", memberID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
