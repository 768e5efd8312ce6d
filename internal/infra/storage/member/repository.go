package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

// Repository репозиторий участников, отделов и рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает участника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	members, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrMemberNotFound
	}
	return members[0], nil
}

// GetByIDs получает участников по списку ID, порядок по ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "full_name", "email", "is_active", "created_at", "updated_at").
		From("members").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.Member, 0, len(ids))
	for rows.Next() {
		var m domain.Member
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// LockMembers блокирует строки участников до конца транзакции.
// Порядок по ID одинаков для всех вызовов, поэтому взаимоблокировки исключены.
func (r *Repository) LockMembers(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("members").
		Where("id = ANY(?)", pq.Array(ids)).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockMembers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: LockMembers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: LockMembers - rows error: %v", ErrScanRow, err)
	}
	if locked < len(uniqueIDs(ids)) {
		return ErrMemberNotFound
	}

	return nil
}

// IsActiveDepartmentMember проверяет активное членство участника в отделе
func (r *Repository) IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("department_members dm").
		Join("members m ON m.id = dm.member_id").
		Where(squirrel.Eq{
			"dm.department_id": departmentID,
			"dm.member_id":     memberID,
			"dm.is_active":     true,
			"m.is_active":      true,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsActiveDepartmentMember - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsActiveDepartmentMember - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetDepartment получает отдел по ID
func (r *Repository) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "leader_id", "is_active").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDepartment - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.Department
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.LeaderID, &d.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDepartment - scan row: %v", ErrScanRow, err)
	}

	return &d, nil
}

// GetWorkingHours возвращает сырой JSON рабочих часов участника (nil, если не задан)
func (r *Repository) GetWorkingHours(ctx context.Context, memberID int64) ([]byte, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("working_hours_json").
		From("members").
		Where(squirrel.Eq{"id": memberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var raw sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
	}
	if !raw.Valid {
		return nil, nil
	}

	return []byte(raw.String), nil
}

// SetWorkingHours сохраняет JSON рабочих часов участника
func (r *Repository) SetWorkingHours(ctx context.Context, memberID int64, raw []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var value interface{}
	if raw != nil {
		value = string(raw)
	}

	query, args, err := psqlbuilder.Update("members").
		Set("working_hours_json", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": memberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetWorkingHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetWorkingHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetWorkingHours - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
