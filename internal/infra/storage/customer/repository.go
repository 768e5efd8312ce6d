package customer

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
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий клиентов и их контактов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента с email и телефонами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_name",
		"primary_email",
		"is_active",
		"total_bookings",
		"last_booking_date",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.PrimaryEmail,
		&c.IsActive,
		&c.TotalBookings,
		&c.LastBookingDate,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if err := r.loadContacts(ctx, executor, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// FindByPrimaryEmail ищет клиента по основному email (без учета регистра)
func (r *Repository) FindByPrimaryEmail(ctx context.Context, email string) (int64, error) {
	return r.findID(ctx, "FindByPrimaryEmail",
		psqlbuilder.Select("id").
			From("customers").
			Where(squirrel.Expr("LOWER(primary_email) = ?", domain.NormalizeEmail(email))).
			OrderBy("id ASC").
			Limit(1))
}

// FindByEmailRecord ищет клиента по дополнительным email
func (r *Repository) FindByEmailRecord(ctx context.Context, email string) (int64, error) {
	return r.findID(ctx, "FindByEmailRecord",
		psqlbuilder.Select("customer_id").
			From("customer_emails").
			Where(squirrel.Expr("LOWER(email_address) = ?", domain.NormalizeEmail(email))).
			OrderBy("id ASC").
			Limit(1))
}

// FindByPhone ищет клиента по нормализованному телефону
func (r *Repository) FindByPhone(ctx context.Context, normalized string) (int64, error) {
	return r.findID(ctx, "FindByPhone",
		psqlbuilder.Select("customer_id").
			From("customer_phones").
			Where(squirrel.Eq{"phone_normalized": normalized}).
			OrderBy("id ASC").
			Limit(1))
}

// FindEmailOwner ищет другого клиента, которому принадлежит email в любом представлении
func (r *Repository) FindEmailOwner(ctx context.Context, email string, excludeCustomerID int64) (*domain.Customer, error) {
	normalized := domain.NormalizeEmail(email)
	return r.findOwner(ctx, "FindEmailOwner", squirrel.Or{
		squirrel.Expr("LOWER(c.primary_email) = ?", normalized),
		squirrel.Expr("c.id IN (SELECT customer_id FROM customer_emails WHERE LOWER(email_address) = ?)", normalized),
	}, excludeCustomerID)
}

// FindPhoneOwner ищет другого клиента, которому принадлежит телефон
func (r *Repository) FindPhoneOwner(ctx context.Context, normalized string, excludeCustomerID int64) (*domain.Customer, error) {
	return r.findOwner(ctx, "FindPhoneOwner",
		squirrel.Expr("c.id IN (SELECT customer_id FROM customer_phones WHERE phone_normalized = ?)", normalized),
		excludeCustomerID)
}

func (r *Repository) findOwner(ctx context.Context, op string, where squirrel.Sqlizer, excludeCustomerID int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("c.id", "c.customer_name", "c.primary_email").
		From("customers c").
		Where(where).
		Where(squirrel.NotEq{"c.id": excludeCustomerID}).
		OrderBy("c.id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.PrimaryEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
	}

	return &c, nil
}

func (r *Repository) findID(ctx context.Context, op string, builder squirrel.SelectBuilder) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCustomerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
	}

	return id, nil
}

// Create создает клиента вместе с email и телефонами
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("customer_name", "primary_email", "is_active").
		Values(c.Name, domain.NormalizeEmail(c.PrimaryEmail), true).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt); err != nil {
		return nil, mapWriteError(err, "Create - execute insert")
	}
	c.IsActive = true
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	for i := range c.Emails {
		c.Emails[i].CustomerID = c.ID
		if err := r.AddEmail(ctx, &c.Emails[i]); err != nil {
			return nil, err
		}
	}
	for i := range c.Phones {
		c.Phones[i].CustomerID = c.ID
		if err := r.AddPhone(ctx, &c.Phones[i]); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// AddEmail добавляет email клиенту
func (r *Repository) AddEmail(ctx context.Context, e *domain.CustomerEmail) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_emails").
		Columns("customer_id", "email_address", "email_type", "is_primary").
		Values(e.CustomerID, domain.NormalizeEmail(e.Address), e.EmailType, e.IsPrimary).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddEmail - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return mapWriteError(err, "AddEmail - execute insert")
	}

	return nil
}

// AddPhone добавляет телефон клиенту
func (r *Repository) AddPhone(ctx context.Context, p *domain.CustomerPhone) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p.Normalized = domain.NormalizePhone(p.Number)

	query, args, err := psqlbuilder.Insert("customer_phones").
		Columns("customer_id", "phone_number", "phone_normalized", "phone_type", "is_primary").
		Values(p.CustomerID, p.Number, p.Normalized, p.PhoneType, p.IsPrimary).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddPhone - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return mapWriteError(err, "AddPhone - execute insert")
	}

	return nil
}

// RecordBooking увеличивает счетчик бронирований и сдвигает дату последнего бронирования
func (r *Repository) RecordBooking(ctx context.Context, customerID int64, bookingDate time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	date := types.DateOnly(bookingDate)
	query, args, err := psqlbuilder.Update("customers").
		Set("total_bookings", squirrel.Expr("total_bookings + 1")).
		Set("last_booking_date", squirrel.Expr("GREATEST(COALESCE(last_booking_date, ?::date), ?::date)", date, date)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordBooking - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordBooking - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *Repository) loadContacts(ctx context.Context, executor DBExecutor, c *domain.Customer) error {
	query, args, err := psqlbuilder.Select("id", "customer_id", "email_address", "email_type", "is_primary").
		From("customer_emails").
		Where(squirrel.Eq{"customer_id": c.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadContacts - build emails query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadContacts - execute emails query: %v", ErrExecQuery, err)
	}
	for rows.Next() {
		var e domain.CustomerEmail
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Address, &e.EmailType, &e.IsPrimary); err != nil {
			rows.Close()
			return fmt.Errorf("%w: loadContacts - scan email: %v", ErrScanRow, err)
		}
		c.Emails = append(c.Emails, e)
	}
	rows.Close()

	query, args, err = psqlbuilder.Select("id", "customer_id", "phone_number", "phone_normalized", "phone_type", "is_primary").
		From("customer_phones").
		Where(squirrel.Eq{"customer_id": c.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadContacts - build phones query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadContacts - execute phones query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.CustomerPhone
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Number, &p.Normalized, &p.PhoneType, &p.IsPrimary); err != nil {
			return fmt.Errorf("%w: loadContacts - scan phone: %v", ErrScanRow, err)
		}
		c.Phones = append(c.Phones, p)
	}

	return rows.Err()
}

// mapWriteError переводит нарушение уникальности в ErrDuplicateContact
func mapWriteError(err error, step string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s: %v", ErrDuplicateContact, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, step, err)
}
