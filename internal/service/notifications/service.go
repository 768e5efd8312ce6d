package notifications

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/mailer"
)

// Service рассылает письма об изменениях бронирований.
// Ошибки только логируются: уведомление не влияет на результат операции.
type Service struct {
	mailer       Mailer
	memberRepo   MemberRepository
	customerRepo CustomerRepository
	enabled      bool
	logger       Logger
}

// NewService создает сервис уведомлений. При enabled=false письма не отправляются.
func NewService(
	mailer Mailer,
	memberRepo MemberRepository,
	customerRepo CustomerRepository,
	enabled bool,
	logger Logger,
) *Service {
	return &Service{
		mailer:       mailer,
		memberRepo:   memberRepo,
		customerRepo: customerRepo,
		enabled:      enabled,
		logger:       logger,
	}
}

// BookingCreated уведомляет участников о новой встрече
func (s *Service) BookingCreated(ctx context.Context, b *domain.Booking) {
	s.notify(ctx, "BookingCreated", b,
		fmt.Sprintf("New meeting: %s", b.Title),
		fmt.Sprintf("A meeting has been scheduled.\n\n%s", describe(b)))
}

// BookingRescheduled уведомляет о переносе
func (s *Service) BookingRescheduled(ctx context.Context, b *domain.Booking, oldStart time.Time) {
	s.notify(ctx, "BookingRescheduled", b,
		fmt.Sprintf("Meeting rescheduled: %s", b.Title),
		fmt.Sprintf("The meeting previously scheduled for %s has been moved.\n\n%s",
			oldStart.Format(domain.DatetimeFormat), describe(b)))
}

// BookingReassigned уведомляет о смене ведущего
func (s *Service) BookingReassigned(ctx context.Context, b *domain.Booking, oldHostName, newHostName string) {
	s.notify(ctx, "BookingReassigned", b,
		fmt.Sprintf("Meeting reassigned: %s", b.Title),
		fmt.Sprintf("The meeting has been reassigned from %s to %s.\n\n%s", oldHostName, newHostName, describe(b)))
}

// BookingCancelled уведомляет об отмене
func (s *Service) BookingCancelled(ctx context.Context, b *domain.Booking) {
	body := fmt.Sprintf("The meeting has been cancelled.\n\n%s", describe(b))
	if b.CancellationReason != nil && *b.CancellationReason != "" {
		body += fmt.Sprintf("\nReason: %s", *b.CancellationReason)
	}
	s.notify(ctx, "BookingCancelled", b, fmt.Sprintf("Meeting cancelled: %s", b.Title), body)
}

func (s *Service) notify(ctx context.Context, op string, b *domain.Booking, subject, body string) {
	if !s.enabled {
		return
	}

	recipients := s.recipients(ctx, op, b)
	if len(recipients) == 0 {
		s.logger.Warn("%s: no recipients for booking id=%d", op, b.ID)
		return
	}

	err := s.mailer.Send(ctx, mailer.Message{To: recipients, Subject: subject, Body: body})
	if err != nil {
		s.logger.Error("%s: failed to send email for booking id=%d: %v", op, b.ID, err)
		return
	}

	s.logger.Info("%s: email sent for booking id=%d to %d recipients", op, b.ID, len(recipients))
}

// recipients собирает адреса ведущих, участников и клиента без повторов
func (s *Service) recipients(ctx context.Context, op string, b *domain.Booking) []string {
	seen := make(map[string]struct{})
	add := func(email string) {
		email = domain.NormalizeEmail(email)
		if email != "" {
			seen[email] = struct{}{}
		}
	}

	memberIDs := append(b.HostIDs(), b.InternalParticipantIDs()...)
	if len(memberIDs) > 0 {
		members, err := s.memberRepo.GetByIDs(ctx, memberIDs)
		if err != nil {
			s.logger.Error("%s: failed to load members for booking id=%d: %v", op, b.ID, err)
		}
		for _, m := range members {
			add(m.Email)
		}
	}

	for _, p := range b.Participants {
		if p.ParticipantType == domain.ParticipantExternal && p.Email != nil {
			add(*p.Email)
		}
	}

	if b.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *b.CustomerID)
		if err != nil {
			s.logger.Error("%s: failed to load customer id=%d: %v", op, *b.CustomerID, err)
		} else {
			add(customer.PrimaryEmail)
		}
	}

	out := make([]string, 0, len(seen))
	for email := range seen {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

func describe(b *domain.Booking) string {
	lines := []string{
		fmt.Sprintf("Title: %s", b.Title),
		fmt.Sprintf("Date: %s", b.StartDatetime.Format(domain.DateFormat)),
		fmt.Sprintf("Time: %s - %s", b.StartDatetime.Format(domain.TimeFormat), b.EndDatetime.Format(domain.TimeFormat)),
		fmt.Sprintf("Status: %s", b.Status),
	}
	return strings.Join(lines, "\n")
}
