package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL для нарушения EXCLUDE ограничения
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"department_id",
	"meeting_type_id",
	"is_internal",
	"booking_status",
	"meeting_title",
	"start_datetime",
	"end_datetime",
	"duration_minutes",
	"customer_id",
	"notes",
	"cancel_token",
	"reschedule_token",
	"cancellation_reason",
	"cancelled_by_role",
	"cancelled_at",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их дочерними таблицами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с хостами, участниками и историей.
// Должен вызываться внутри транзакции: при нарушении ограничения пересечения хостов
// возвращает ErrOverlap и транзакция откатывается целиком.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"department_id",
			"meeting_type_id",
			"is_internal",
			"booking_status",
			"meeting_title",
			"start_datetime",
			"end_datetime",
			"duration_minutes",
			"customer_id",
			"notes",
			"cancel_token",
			"reschedule_token",
			"created_by",
		).
		Values(
			booking.DepartmentID,
			booking.MeetingTypeID,
			booking.IsInternal,
			booking.Status,
			booking.Title,
			booking.StartDatetime,
			booking.EndDatetime,
			booking.DurationMinutes,
			booking.CustomerID,
			booking.Notes,
			booking.CancelToken,
			booking.RescheduleToken,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertAssignedUsers(ctx, executor, booking); err != nil {
		return nil, err
	}
	if err := r.insertParticipants(ctx, executor, booking); err != nil {
		return nil, err
	}
	for i := range booking.History {
		booking.History[i].BookingID = booking.ID
		if err := r.AddHistory(ctx, &booking.History[i]); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID со всеми дочерними записями.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCancelToken получает бронирование по токену отмены
func (r *Repository) GetByCancelToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByCancelToken", squirrel.Eq{"cancel_token": token})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	if err := r.loadChildren(ctx, executor, []*domain.Booking{booking}, true); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByMember получает бронирования, в которых участник является хостом или внутренним участником.
// По умолчанию финализированные бронирования исключаются.
func (r *Repository) ListByMember(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Expr("id IN (SELECT booking_id FROM booking_assigned_users WHERE member_id = ?)", filter.MemberID),
			squirrel.Expr("id IN (SELECT booking_id FROM booking_participants WHERE member_id = ? AND participant_type = ?)",
				filter.MemberID, domain.ParticipantInternal),
		})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_datetime": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"booking_status": domain.FinalizedStatusStrings()})
	}

	query, args, err := selectBuilder.OrderBy("start_datetime ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMember - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMember - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadChildren(ctx, executor, bookings, false); err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListOverlapping получает активные бронирования участника (хост и внутренний участник),
// пересекающиеся с интервалом [start, end). Одно бронирование может вернуться в обеих ролях.
func (r *Repository) ListOverlapping(ctx context.Context, memberID int64, start, end time.Time, excludeBookingID *int64) ([]domain.MemberBooking, error) {
	return r.listMemberBookings(ctx, "ListOverlapping", memberID, squirrel.And{
		squirrel.Lt{"b.start_datetime": end},
		squirrel.Gt{"b.end_datetime": start},
	}, excludeBookingID)
}

// ListStartingBetween получает активные бронирования участника, начинающиеся в [from, to)
func (r *Repository) ListStartingBetween(ctx context.Context, memberID int64, from, to time.Time, excludeBookingID *int64) ([]domain.MemberBooking, error) {
	return r.listMemberBookings(ctx, "ListStartingBetween", memberID, squirrel.And{
		squirrel.GtOrEq{"b.start_datetime": from},
		squirrel.Lt{"b.start_datetime": to},
	}, excludeBookingID)
}

func (r *Repository) listMemberBookings(
	ctx context.Context,
	op string,
	memberID int64,
	window squirrel.Sqlizer,
	excludeBookingID *int64,
) ([]domain.MemberBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roles := []struct {
		role  domain.MemberRole
		join  string
		where squirrel.Eq
	}{
		{
			role:  domain.RoleHost,
			join:  "booking_assigned_users m ON m.booking_id = b.id",
			where: squirrel.Eq{"m.member_id": memberID},
		},
		{
			role:  domain.RoleParticipant,
			join:  "booking_participants m ON m.booking_id = b.id",
			where: squirrel.Eq{"m.member_id": memberID, "m.participant_type": domain.ParticipantInternal},
		},
	}

	result := make([]domain.MemberBooking, 0)
	for _, role := range roles {
		selectBuilder := psqlbuilder.Select("b.id", "b.start_datetime", "b.end_datetime").
			From("bookings b").
			Join(role.join).
			Where(role.where).
			Where(squirrel.NotEq{"b.booking_status": domain.FinalizedStatusStrings()}).
			Where(window).
			OrderBy("b.start_datetime ASC")

		if excludeBookingID != nil {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *excludeBookingID})
		}

		query, args, err := selectBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
		}

		for rows.Next() {
			mb := domain.MemberBooking{Role: role.role}
			if err := rows.Scan(&mb.BookingID, &mb.StartDatetime, &mb.EndDatetime); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
			}
			result = append(result, mb)
		}
		rowsErr := rows.Err()
		rows.Close()
		if rowsErr != nil {
			return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, rowsErr)
		}
	}

	return result, nil
}

// UpdateSchedule переносит бронирование и денормализованные интервалы его хостов
func (r *Repository) UpdateSchedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_datetime", booking.StartDatetime).
		Set("end_datetime", booking.EndDatetime).
		Set("duration_minutes", booking.DurationMinutes).
		Set("booking_status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}
	if err := requireAffected(result, "UpdateSchedule"); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Update("booking_assigned_users").
		Set("start_datetime", booking.StartDatetime).
		Set("end_datetime", booking.EndDatetime).
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build hosts update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "UpdateSchedule - execute hosts update")
	}

	return nil
}

// ReplaceAssignedUsers перезаписывает список хостов бронирования
func (r *Repository) ReplaceAssignedUsers(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_assigned_users").
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceAssignedUsers - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAssignedUsers - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertAssignedUsers(ctx, executor, booking)
}

// UpdateStatus сохраняет статус и данные отмены.
// Для финализированных статусов интервалы хостов деактивируются и перестают участвовать в ограничении пересечений.
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_status", booking.Status).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_by_role", booking.CancelledByRole).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	if err := requireAffected(result, "UpdateStatus"); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Update("booking_assigned_users").
		Set("is_active", !booking.IsFinalized()).
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build hosts update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "UpdateStatus - execute hosts update")
	}

	return nil
}

// AddHistory добавляет запись в журнал изменений бронирования
func (r *Repository) AddHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns("booking_id", "action", "performed_by", "performed_at", "old_value", "new_value").
		Values(entry.BookingID, entry.Action, entry.PerformedBy, entry.PerformedAt, entry.OldValue, entry.NewValue).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return fmt.Errorf("%w: AddHistory - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) insertAssignedUsers(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if len(booking.AssignedUsers) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_assigned_users").
		Columns("booking_id", "member_id", "is_primary_host", "start_datetime", "end_datetime", "is_active")

	active := !booking.IsFinalized()
	for _, au := range booking.AssignedUsers {
		insertBuilder = insertBuilder.Values(booking.ID, au.MemberID, au.IsPrimaryHost, booking.StartDatetime, booking.EndDatetime, active)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertAssignedUsers - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insertAssignedUsers - execute insert")
	}

	for i := range booking.AssignedUsers {
		booking.AssignedUsers[i].BookingID = booking.ID
	}

	return nil
}

func (r *Repository) insertParticipants(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if len(booking.Participants) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_participants").
		Columns("booking_id", "member_id", "email", "participant_type", "response_status")

	for _, p := range booking.Participants {
		insertBuilder = insertBuilder.Values(booking.ID, p.MemberID, p.Email, p.ParticipantType, p.ResponseStatus)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertParticipants - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertParticipants - execute insert: %v", ErrExecQuery, err)
	}

	for i := range booking.Participants {
		booking.Participants[i].BookingID = booking.ID
	}

	return nil
}

// loadChildren подгружает хостов и участников, а для одиночного бронирования и историю
func (r *Repository) loadChildren(ctx context.Context, executor DBExecutor, bookings []*domain.Booking, withHistory bool) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	// Хосты
	query, args, err := psqlbuilder.Select("id", "booking_id", "member_id", "is_primary_host").
		From("booking_assigned_users").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadChildren - build hosts query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadChildren - execute hosts query: %v", ErrExecQuery, err)
	}
	for rows.Next() {
		var au domain.AssignedUser
		if err := rows.Scan(&au.ID, &au.BookingID, &au.MemberID, &au.IsPrimaryHost); err != nil {
			rows.Close()
			return fmt.Errorf("%w: loadChildren - scan host: %v", ErrScanRow, err)
		}
		if b, ok := byID[au.BookingID]; ok {
			b.AssignedUsers = append(b.AssignedUsers, au)
		}
	}
	rows.Close()

	// Участники
	query, args, err = psqlbuilder.Select("id", "booking_id", "member_id", "email", "participant_type", "response_status").
		From("booking_participants").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadChildren - build participants query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadChildren - execute participants query: %v", ErrExecQuery, err)
	}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.BookingID, &p.MemberID, &p.Email, &p.ParticipantType, &p.ResponseStatus); err != nil {
			rows.Close()
			return fmt.Errorf("%w: loadChildren - scan participant: %v", ErrScanRow, err)
		}
		if b, ok := byID[p.BookingID]; ok {
			b.Participants = append(b.Participants, p)
		}
	}
	rows.Close()

	if !withHistory {
		return nil
	}

	// История
	query, args, err = psqlbuilder.Select("id", "booking_id", "action", "performed_by", "performed_at", "old_value", "new_value").
		From("booking_history").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("performed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadChildren - build history query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadChildren - execute history query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h domain.HistoryEntry
		if err := rows.Scan(&h.ID, &h.BookingID, &h.Action, &h.PerformedBy, &h.PerformedAt, &h.OldValue, &h.NewValue); err != nil {
			return fmt.Errorf("%w: loadChildren - scan history: %v", ErrScanRow, err)
		}
		if b, ok := byID[h.BookingID]; ok {
			b.History = append(b.History, h)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.DepartmentID,
		&booking.MeetingTypeID,
		&booking.IsInternal,
		&booking.Status,
		&booking.Title,
		&booking.StartDatetime,
		&booking.EndDatetime,
		&booking.DurationMinutes,
		&booking.CustomerID,
		&booking.Notes,
		&booking.CancelToken,
		&booking.RescheduleToken,
		&booking.CancellationReason,
		&booking.CancelledByRole,
		&booking.CancelledAt,
		&booking.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// mapWriteError переводит нарушение ограничения пересечения в ErrOverlap
func mapWriteError(err error, step string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
		return fmt.Errorf("%w: %s: %v", ErrOverlap, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, step, err)
}
