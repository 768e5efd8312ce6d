package blockedslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/blockedslot"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Service управление блокировками времени участника
type Service struct {
	slotRepo   BlockedSlotRepository
	memberRepo MemberRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	slotRepo BlockedSlotRepository,
	memberRepo MemberRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:   slotRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает блокировку. Блокировки одного участника на одну дату не пересекаются.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("Create: blocking %s %s-%s for member=%d by user=%d",
		req.Date, req.StartTime, req.EndTime, req.MemberID, req.Actor.UserID)

	slot, err := buildSlot(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for member=%d: %v", req.MemberID, err)
		return nil, err
	}

	if err := s.checkMemberAccess(ctx, "Create", req.Actor, req.MemberID); err != nil {
		return nil, err
	}

	var created *domain.BlockedSlot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Блокировка строки участника сериализует параллельные вставки
		if err := s.memberRepo.LockMembers(ctx, []int64{req.MemberID}); err != nil {
			return err
		}

		existing, err := s.slotRepo.ListByMemberAndDate(ctx, req.MemberID, slot.BlockedDate)
		if err != nil {
			return err
		}
		for i := range existing {
			if types.Overlaps(slot.Start(), slot.End(), existing[i].Start(), existing[i].End()) {
				return fmt.Errorf("%w: %s - %s (%s)", ErrSlotOverlap,
					existing[i].StartTime, existing[i].EndTime, existing[i].Reason)
			}
		}

		created, err = s.slotRepo.Create(ctx, slot)
		return err
	})
	if err != nil {
		return nil, s.translate("Create", req.MemberID, err)
	}

	s.logger.Info("Create: created blocked slot id=%d for member=%d", created.ID, req.MemberID)
	resp := models.FromDomain(created)
	return &resp, nil
}

// List возвращает блокировки участника за период
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BlockedSlotListResponse, error) {
	s.logger.Info("List: fetching blocked slots for member=%d %s..%s",
		req.MemberID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateListRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkMemberAccess(ctx, "List", req.Actor, req.MemberID); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByMember(ctx, req.MemberID, req.From, req.To)
	if err != nil {
		return nil, s.translate("List", req.MemberID, err)
	}

	return models.FromDomainList(slots), nil
}

// Delete удаляет блокировку участника
func (s *Service) Delete(ctx context.Context, actor *domain.Actor, memberID, slotID int64) error {
	s.logger.Info("Delete: deleting blocked slot id=%d of member=%d by user=%d", slotID, memberID, actor.UserID)

	if err := s.checkMemberAccess(ctx, "Delete", actor, memberID); err != nil {
		return err
	}

	if err := s.slotRepo.Delete(ctx, memberID, slotID); err != nil {
		return s.translate("Delete", memberID, err)
	}

	s.logger.Info("Delete: deleted blocked slot id=%d", slotID)
	return nil
}

// checkMemberAccess участник управляет своими блокировками, руководитель - блокировками своего отдела
func (s *Service) checkMemberAccess(ctx context.Context, op string, actor *domain.Actor, memberID int64) error {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return s.translate(op, memberID, err)
	}

	if actor.UserID == memberID || actor.IsSystemManager() {
		return nil
	}

	for _, departmentID := range actor.LedDepartments {
		ok, err := s.memberRepo.IsActiveDepartmentMember(ctx, departmentID, memberID)
		if err != nil {
			return s.translate(op, memberID, err)
		}
		if ok {
			return nil
		}
	}

	s.logger.Warn("%s: user=%d has no access to member=%d", op, actor.UserID, memberID)
	return ErrAccessDenied
}

func (s *Service) translate(op string, memberID int64, err error) error {
	switch {
	case errors.Is(err, ErrSlotOverlap):
		s.logger.Warn("%s: member=%d: %v", op, memberID, err)
		return err
	case errors.Is(err, memberRepo.ErrMemberNotFound):
		s.logger.Warn("%s: member=%d not found", op, memberID)
		return ErrMemberNotFound
	case errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound):
		s.logger.Warn("%s: blocked slot of member=%d not found", op, memberID)
		return ErrBlockedSlotNotFound
	default:
		s.logger.Error("%s: repository error for member=%d: %v", op, memberID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
