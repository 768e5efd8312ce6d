package customers

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
)

// Service поиск и создание клиентов по email и телефону
type Service struct {
	customerRepo CustomerRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// FindOrCreate находит клиента по основному email, затем по дополнительным email,
// затем по телефону (email прикрепляется к найденному клиенту), иначе создает нового.
func (s *Service) FindOrCreate(ctx context.Context, req *models.ResolveRequest) (*models.ResolveResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	var phone string
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
	}

	var resp *models.ResolveResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		id, err := s.find(ctx, email, phone)
		if err != nil {
			return err
		}
		if id != nil {
			resp = id
			return nil
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = nameFromEmail(email)
		}

		customer := &domain.Customer{
			Name:         name,
			PrimaryEmail: email,
			Emails: []domain.CustomerEmail{
				{Address: email, EmailType: domain.EmailTypePrimary, IsPrimary: true},
			},
		}
		if domain.NormalizePhone(phone) != "" {
			customer.Phones = []domain.CustomerPhone{
				{Number: phone, PhoneType: domain.PhoneTypeMobile, IsPrimary: true},
			}
		}

		created, err := s.Save(ctx, customer)
		if err != nil {
			return err
		}
		resp = &models.ResolveResponse{CustomerID: created.ID, Name: created.Name, Created: true, MatchedBy: models.MatchedNone}
		return nil
	})
	if err != nil {
		return nil, s.translate("FindOrCreate", err)
	}

	s.logger.Info("FindOrCreate: resolved customer id=%d (%s)", resp.CustomerID, resp.MatchedBy)
	return resp, nil
}

// find возвращает nil, если клиент не найден ни одним способом
func (s *Service) find(ctx context.Context, email, phone string) (*models.ResolveResponse, error) {
	id, err := s.customerRepo.FindByPrimaryEmail(ctx, email)
	if err == nil {
		return &models.ResolveResponse{CustomerID: id, MatchedBy: models.MatchedByEmail}, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil, err
	}

	id, err = s.customerRepo.FindByEmailRecord(ctx, email)
	if err == nil {
		return &models.ResolveResponse{CustomerID: id, MatchedBy: models.MatchedByEmail}, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil, err
	}

	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return nil, nil
	}

	id, err = s.customerRepo.FindByPhone(ctx, normalized)
	if errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Найден по телефону: новый email становится дополнительным адресом клиента
	if err := s.ensureEmailFree(ctx, email, id); err != nil {
		return nil, err
	}
	if err := s.customerRepo.AddEmail(ctx, &domain.CustomerEmail{
		CustomerID: id,
		Address:    email,
		EmailType:  domain.EmailTypePersonal,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("FindOrCreate: attached email to customer id=%d found by phone", id)
	return &models.ResolveResponse{CustomerID: id, MatchedBy: models.MatchedByPhone}, nil
}

// Save создает клиента, предварительно проверив, что ни один его email и телефон
// не принадлежит другому клиенту
func (s *Service) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	emails := []string{c.PrimaryEmail}
	for _, e := range c.Emails {
		emails = append(emails, e.Address)
	}
	for _, email := range emails {
		if err := s.ensureEmailFree(ctx, email, c.ID); err != nil {
			return nil, err
		}
	}

	for _, p := range c.Phones {
		if err := s.ensurePhoneFree(ctx, p.Number, c.ID); err != nil {
			return nil, err
		}
	}

	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecordBooking обновляет статистику клиента после бронирования
func (s *Service) RecordBooking(ctx context.Context, customerID int64, bookingDate time.Time) error {
	if err := s.customerRepo.RecordBooking(ctx, customerID, bookingDate); err != nil {
		return s.translate("RecordBooking", err)
	}
	return nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, customerID int64) error {
	if domain.NormalizeEmail(email) == "" {
		return nil
	}
	owner, err := s.customerRepo.FindEmailOwner(ctx, email, customerID)
	if errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: Email '%s' is already associated with customer '%s' (%d)",
		ErrDuplicateContact, domain.NormalizeEmail(email), owner.Name, owner.ID)
}

func (s *Service) ensurePhoneFree(ctx context.Context, phone string, customerID int64) error {
	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return nil
	}
	owner, err := s.customerRepo.FindPhoneOwner(ctx, normalized, customerID)
	if errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: Phone '%s' is already associated with customer '%s' (%d)",
		ErrDuplicateContact, phone, owner.Name, owner.ID)
}

// nameFromEmail "jane.doe_smith@x" -> "Jane Doe Smith"
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(local)
	// Caser хранит состояние и не разделяется между горутинами
	return cases.Title(language.English).String(strings.Join(strings.Fields(local), " "))
}

func (s *Service) translate(op string, err error) error {
	switch {
	case errors.Is(err, ErrDuplicateContact):
		s.logger.Warn("%s: %v", op, err)
		return err
	case errors.Is(err, customerRepo.ErrDuplicateContact):
		s.logger.Warn("%s: concurrent duplicate contact: %v", op, err)
		return fmt.Errorf("%w: %v", ErrDuplicateContact, err)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
