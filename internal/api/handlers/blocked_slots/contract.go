package blocked_slots

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots/models"
)

type BlockedSlotService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedSlotResponse, error)
	List(ctx context.Context, req *models.ListRequest) (*models.BlockedSlotListResponse, error)
	Delete(ctx context.Context, actor *domain.Actor, memberID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
