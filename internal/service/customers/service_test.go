package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/ptr"
)

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

// fakeCustomers хранит клиентов в памяти
type fakeCustomers struct {
	customers []*domain.Customer
	recorded  []int64
}

func (f *fakeCustomers) byID(id int64) *domain.Customer {
	for _, c := range f.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *fakeCustomers) FindByPrimaryEmail(_ context.Context, email string) (int64, error) {
	for _, c := range f.customers {
		if domain.NormalizeEmail(c.PrimaryEmail) == domain.NormalizeEmail(email) {
			return c.ID, nil
		}
	}
	return 0, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomers) FindByEmailRecord(_ context.Context, email string) (int64, error) {
	for _, c := range f.customers {
		for _, e := range c.Emails {
			if domain.NormalizeEmail(e.Address) == domain.NormalizeEmail(email) {
				return c.ID, nil
			}
		}
	}
	return 0, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomers) FindByPhone(_ context.Context, normalized string) (int64, error) {
	for _, c := range f.customers {
		for _, p := range c.Phones {
			if domain.NormalizePhone(p.Number) == normalized {
				return c.ID, nil
			}
		}
	}
	return 0, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomers) FindEmailOwner(_ context.Context, email string, exclude int64) (*domain.Customer, error) {
	for _, c := range f.customers {
		if c.ID != exclude && c.HasEmail(email) {
			return c, nil
		}
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomers) FindPhoneOwner(_ context.Context, normalized string, exclude int64) (*domain.Customer, error) {
	for _, c := range f.customers {
		if c.ID == exclude {
			continue
		}
		for _, p := range c.Phones {
			if domain.NormalizePhone(p.Number) == normalized {
				return c, nil
			}
		}
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomers) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	c.ID = int64(len(f.customers) + 1)
	f.customers = append(f.customers, c)
	return c, nil
}

func (f *fakeCustomers) AddEmail(_ context.Context, e *domain.CustomerEmail) error {
	c := f.byID(e.CustomerID)
	c.Emails = append(c.Emails, *e)
	return nil
}

func (f *fakeCustomers) RecordBooking(_ context.Context, customerID int64, _ time.Time) error {
	f.recorded = append(f.recorded, customerID)
	return nil
}

func newService() (*Service, *fakeCustomers) {
	repo := &fakeCustomers{customers: []*domain.Customer{
		{
			ID:           1,
			Name:         "Jane Doe",
			PrimaryEmail: "jane@example.com",
			Emails:       []domain.CustomerEmail{{Address: "jane.work@example.com"}},
			Phones:       []domain.CustomerPhone{{Number: "+45 12 34 56 78"}},
		},
	}}
	return NewService(repo, passTx{}, logger.Nop{}), repo
}

func TestFindOrCreateLookupOrder(t *testing.T) {
	tests := []struct {
		name      string
		req       models.ResolveRequest
		wantID    int64
		matchedBy string
	}{
		{"primary email", models.ResolveRequest{Email: " JANE@example.com "}, 1, models.MatchedByEmail},
		{"secondary email", models.ResolveRequest{Email: "jane.work@example.com"}, 1, models.MatchedByEmail},
		{"phone", models.ResolveRequest{Email: "jd@other.org", Phone: ptr.Ptr("+45-1234-5678")}, 1, models.MatchedByPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()

			resp, err := svc.FindOrCreate(context.Background(), &tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.CustomerID)
			assert.Equal(t, tt.matchedBy, resp.MatchedBy)
			assert.False(t, resp.Created)
			assert.Len(t, repo.customers, 1)
		})
	}
}

func TestFindOrCreateAttachesEmailFoundByPhone(t *testing.T) {
	svc, repo := newService()

	// Номер без '+' считается другим телефоном
	resp, err := svc.FindOrCreate(context.Background(), &models.ResolveRequest{Email: "jd@other.org", Phone: ptr.Ptr("4512345678")})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Len(t, repo.customers, 2)

	resp, err = svc.FindOrCreate(context.Background(), &models.ResolveRequest{Email: "jd2@other.org", Phone: ptr.Ptr("+45 1234 5678")})
	require.NoError(t, err)
	assert.Equal(t, models.MatchedByPhone, resp.MatchedBy)
	assert.True(t, repo.customers[0].HasEmail("jd2@other.org"))
	assert.Equal(t, domain.EmailTypePersonal, repo.customers[0].Emails[len(repo.customers[0].Emails)-1].EmailType)
}

func TestFindOrCreateCreatesWithDerivedName(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.FindOrCreate(context.Background(), &models.ResolveRequest{Email: "john.smith_jr@example.com", Phone: ptr.Ptr("+1 555 0100")})

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "John Smith Jr", resp.Name)
	require.Len(t, repo.customers, 2)
	created := repo.customers[1]
	assert.Equal(t, "john.smith_jr@example.com", created.PrimaryEmail)
	require.Len(t, created.Phones, 1)
	assert.Equal(t, domain.PhoneTypeMobile, created.Phones[0].PhoneType)
}

func TestSaveRejectsDuplicates(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.Customer{Name: "Other", PrimaryEmail: "new@example.com", Emails: []domain.CustomerEmail{{Address: "Jane.Work@example.com"}}})
	require.ErrorIs(t, err, ErrDuplicateContact)
	assert.Contains(t, err.Error(), "Email 'jane.work@example.com' is already associated with customer 'Jane Doe' (1)")

	_, err = svc.Save(ctx, &domain.Customer{Name: "Other", PrimaryEmail: "new@example.com", Phones: []domain.CustomerPhone{{Number: "+45 1234 5678"}}})
	require.ErrorIs(t, err, ErrDuplicateContact)
	assert.Contains(t, err.Error(), "Phone '+45 1234 5678' is already associated with customer 'Jane Doe' (1)")
}

func TestFindOrCreateValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.FindOrCreate(context.Background(), &models.ResolveRequest{Name: "No Email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.FindOrCreate(context.Background(), &models.ResolveRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordBooking(t *testing.T) {
	svc, repo := newService()

	require.NoError(t, svc.RecordBooking(context.Background(), 1, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []int64{1}, repo.recorded)
}
