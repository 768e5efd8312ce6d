package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// CreateRequest запрос на создание блокировки
type CreateRequest struct {
	Actor     *domain.Actor `json:"-"`
	MemberID  int64         `json:"-"`
	Date      string        `json:"date"`      // "2026-03-02"
	StartTime string        `json:"startTime"` // "10:00"
	EndTime   string        `json:"endTime"`   // "11:00"
	Reason    string        `json:"reason"`
}

// ListRequest запрос блокировок за период (включительно)
type ListRequest struct {
	Actor    *domain.Actor
	MemberID int64
	From     time.Time
	To       time.Time
}

// BlockedSlotResponse блокировка в ответе API
type BlockedSlotResponse struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"memberId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse список блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// FromDomain конвертирует блокировку
func FromDomain(s *domain.BlockedSlot) BlockedSlotResponse {
	return BlockedSlotResponse{
		ID:        s.ID,
		MemberID:  s.MemberID,
		Date:      s.BlockedDate.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainList конвертирует список блокировок
func FromDomainList(slots []domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{BlockedSlots: make([]BlockedSlotResponse, 0, len(slots))}
	for i := range slots {
		resp.BlockedSlots = append(resp.BlockedSlots, FromDomain(&slots[i]))
	}
	return resp
}
