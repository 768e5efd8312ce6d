package meetingtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

// Repository репозиторий типов встреч
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип встречи по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MeetingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "department_id", "name", "duration_minutes", "is_internal", "is_active").
		From("meeting_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var mt domain.MeetingType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&mt.ID,
		&mt.DepartmentID,
		&mt.Name,
		&mt.DurationMinutes,
		&mt.IsInternal,
		&mt.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &mt, nil
}
