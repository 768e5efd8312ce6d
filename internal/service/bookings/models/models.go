package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Actor  *domain.Actor `json:"-"`
	Status string        `json:"status"`
	Reason *string       `json:"reason,omitempty"` // причина отмены
}

// CancelByTokenRequest отмена клиентом по токену из письма
type CancelByTokenRequest struct {
	Token  string  `json:"token"`
	Reason *string `json:"reason,omitempty"`
}

// ListMemberBookingsRequest запрос бронирований участника
type ListMemberBookingsRequest struct {
	Actor           *domain.Actor
	MemberID        int64
	From            *time.Time
	To              *time.Time // включительно
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListMemberBookingsRequest) ToDomainFilter() (domain.MemberBookingsFilter, error) {
	filter := domain.MemberBookingsFilter{
		MemberID:        r.MemberID,
		From:            r.From,
		IncludeInactive: r.IncludeInactive,
	}

	if r.To != nil {
		to := r.To.AddDate(0, 0, 1)
		filter.To = &to
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный фильтр по финальному статусу подразумевает неактивные бронирования
		filter.IncludeInactive = filter.IncludeInactive || status.IsFinalized()
	}

	return filter, nil
}

// Response модели

// HostResponse ведущий встречи
type HostResponse struct {
	MemberID      int64 `json:"memberId"`
	IsPrimaryHost bool  `json:"isPrimaryHost"`
}

// ParticipantResponse участник встречи
type ParticipantResponse struct {
	MemberID        *int64  `json:"memberId,omitempty"`
	Email           *string `json:"email,omitempty"`
	ParticipantType string  `json:"participantType"`
	ResponseStatus  string  `json:"responseStatus"`
}

// HistoryResponse запись журнала изменений
type HistoryResponse struct {
	Action      string    `json:"action"`
	PerformedBy int64     `json:"performedBy"`
	PerformedAt time.Time `json:"performedAt"`
	OldValue    *string   `json:"oldValue,omitempty"`
	NewValue    *string   `json:"newValue,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	DepartmentID    int64   `json:"departmentId"`
	MeetingTypeID   int64   `json:"meetingTypeId"`
	IsInternal      bool    `json:"isInternal"`
	Status          string  `json:"status"`
	Title           string  `json:"title"`
	Date            string  `json:"date"`      // "2026-03-03"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	CustomerID      *int64  `json:"customerId,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	Hosts        []HostResponse        `json:"hosts"`
	Participants []ParticipantResponse `json:"participants"`
	History      []HistoryResponse     `json:"history,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledByRole    *string `json:"cancelledByRole,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		DepartmentID:       b.DepartmentID,
		MeetingTypeID:      b.MeetingTypeID,
		IsInternal:         b.IsInternal,
		Status:             string(b.Status),
		Title:              b.Title,
		Date:               b.StartDatetime.Format(domain.DateFormat),
		StartTime:          b.StartDatetime.Format(domain.TimeFormat),
		EndTime:            b.EndDatetime.Format(domain.TimeFormat),
		DurationMinutes:    b.DurationMinutes,
		CustomerID:         b.CustomerID,
		Notes:              b.Notes,
		Hosts:              make([]HostResponse, 0, len(b.AssignedUsers)),
		Participants:       make([]ParticipantResponse, 0, len(b.Participants)),
		CancellationReason: b.CancellationReason,
		CancelledByRole:    b.CancelledByRole,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, au := range b.AssignedUsers {
		resp.Hosts = append(resp.Hosts, HostResponse{MemberID: au.MemberID, IsPrimaryHost: au.IsPrimaryHost})
	}
	for _, p := range b.Participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			MemberID:        p.MemberID,
			Email:           p.Email,
			ParticipantType: string(p.ParticipantType),
			ResponseStatus:  string(p.ResponseStatus),
		})
	}
	for _, h := range b.History {
		resp.History = append(resp.History, HistoryResponse{
			Action:      h.Action,
			PerformedBy: h.PerformedBy,
			PerformedAt: h.PerformedAt,
			OldValue:    h.OldValue,
			NewValue:    h.NewValue,
		})
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
