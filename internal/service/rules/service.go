package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
)

const defaultRuleName = "Default"

// Service управление правилами доступности, рабочими часами и исключениями на даты
type Service struct {
	ruleRepo     RuleRepository
	memberRepo   MemberRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	memberRepo MemberRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		memberRepo:   memberRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetRule возвращает действующее правило, рабочие часы и предстоящие исключения участника
func (s *Service) GetRule(ctx context.Context, actor *domain.Actor, memberID int64) (*models.RuleResponse, error) {
	s.logger.Info("GetRule: fetching rule for member=%d by user=%d", memberID, actor.UserID)

	if err := s.checkMemberAccess(ctx, "GetRule", actor, memberID); err != nil {
		return nil, err
	}

	raw, err := s.memberRepo.GetWorkingHours(ctx, memberID)
	if err != nil {
		return nil, s.translate("GetRule", memberID, err)
	}

	rule, err := s.getRule(ctx, memberID)
	if err != nil {
		return nil, s.translate("GetRule", memberID, err)
	}

	overrides := make([]domain.DateOverride, 0)
	if rule != nil {
		overrides, err = s.ruleRepo.ListOverridesFrom(ctx, rule.ID, s.timeProvider.Now())
		if err != nil {
			return nil, s.translate("GetRule", memberID, err)
		}
	}

	return models.FromDomainRule(memberID, rule, domain.ParseWeeklySchedule(raw), overrides), nil
}

// UpdateRule обновляет лимиты правила и рабочие часы. Правило создается при первом изменении.
func (s *Service) UpdateRule(ctx context.Context, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpdateRule: updating rule for member=%d by user=%d", req.MemberID, req.Actor.UserID)

	if err := validateRuleRequest(req); err != nil {
		s.logger.Warn("UpdateRule: validation failed for member=%d: %v", req.MemberID, err)
		return nil, err
	}

	var schedule *domain.WeeklySchedule
	if req.WorkingHours != nil {
		var err error
		schedule, err = buildSchedule(req.WorkingHours)
		if err != nil {
			s.logger.Warn("UpdateRule: invalid working hours for member=%d: %v", req.MemberID, err)
			return nil, err
		}
	}

	if err := s.checkMemberAccess(ctx, "UpdateRule", req.Actor, req.MemberID); err != nil {
		return nil, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if schedule != nil {
			raw, err := domain.MarshalWeeklySchedule(schedule)
			if err != nil {
				return fmt.Errorf("%w: UpdateRule - marshal schedule: %v", ErrInternal, err)
			}
			if err := s.memberRepo.SetWorkingHours(ctx, req.MemberID, raw); err != nil {
				return err
			}
		}

		rule, err := s.getRule(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if rule == nil {
			rule = &domain.AvailabilityRule{MemberID: req.MemberID, Name: defaultRuleName, IsDefault: true}
			applyRuleChanges(rule, req)
			_, err = s.ruleRepo.CreateRule(ctx, rule)
			return err
		}

		applyRuleChanges(rule, req)
		return s.ruleRepo.UpdateRule(ctx, rule)
	})
	if err != nil {
		return nil, s.translate("UpdateRule", req.MemberID, err)
	}

	s.logger.Info("UpdateRule: successfully updated rule for member=%d", req.MemberID)
	return s.GetRule(ctx, req.Actor, req.MemberID)
}

// AddOverride добавляет исключение на дату к действующему правилу участника
func (s *Service) AddOverride(ctx context.Context, req *models.AddOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("AddOverride: adding override %s for member=%d by user=%d", req.Date, req.MemberID, req.Actor.UserID)

	override, err := buildOverride(req, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("AddOverride: validation failed for member=%d: %v", req.MemberID, err)
		return nil, err
	}

	if err := s.checkMemberAccess(ctx, "AddOverride", req.Actor, req.MemberID); err != nil {
		return nil, err
	}

	var created *domain.DateOverride
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		rule, err := s.getRule(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if rule == nil {
			rule, err = s.ruleRepo.CreateRule(ctx, &domain.AvailabilityRule{
				MemberID:  req.MemberID,
				Name:      defaultRuleName,
				IsDefault: true,
			})
			if err != nil {
				return err
			}
		}

		override.RuleID = rule.ID
		created, err = s.ruleRepo.AddOverride(ctx, override)
		return err
	})
	if err != nil {
		return nil, s.translate("AddOverride", req.MemberID, err)
	}

	s.logger.Info("AddOverride: created override id=%d for member=%d", created.ID, req.MemberID)
	resp := models.FromDomainOverride(*created)
	return &resp, nil
}

// DeleteOverride удаляет исключение участника
func (s *Service) DeleteOverride(ctx context.Context, actor *domain.Actor, memberID, overrideID int64) error {
	s.logger.Info("DeleteOverride: deleting override id=%d of member=%d by user=%d", overrideID, memberID, actor.UserID)

	if err := s.checkMemberAccess(ctx, "DeleteOverride", actor, memberID); err != nil {
		return err
	}

	if err := s.ruleRepo.DeleteOverride(ctx, memberID, overrideID); err != nil {
		if errors.Is(err, rulesRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override id=%d not found for member=%d", overrideID, memberID)
			return ErrOverrideNotFound
		}
		return s.translate("DeleteOverride", memberID, err)
	}

	s.logger.Info("DeleteOverride: deleted override id=%d", overrideID)
	return nil
}

// Вспомогательные методы

func (s *Service) getRule(ctx context.Context, memberID int64) (*domain.AvailabilityRule, error) {
	rule, err := s.ruleRepo.GetDefaultRule(ctx, memberID)
	if errors.Is(err, rulesRepo.ErrRuleNotFound) {
		return nil, nil
	}
	return rule, err
}

func applyRuleChanges(rule *domain.AvailabilityRule, req *models.UpdateRuleRequest) {
	if req.BufferTimeBefore != nil {
		rule.BufferTimeBefore = *req.BufferTimeBefore
	}
	if req.BufferTimeAfter != nil {
		rule.BufferTimeAfter = *req.BufferTimeAfter
	}
	if req.MaxBookingsPerDay != nil {
		rule.MaxBookingsPerDay = req.MaxBookingsPerDay
	}
	if req.MaxBookingsPerWeek != nil {
		rule.MaxBookingsPerWeek = req.MaxBookingsPerWeek
	}
	if req.MinNoticeHours != nil {
		rule.MinNoticeHours = req.MinNoticeHours
	}
	if req.MaxDaysAdvance != nil {
		rule.MaxDaysAdvance = req.MaxDaysAdvance
	}
}

// checkMemberAccess участник управляет своими правилами, руководитель - правилами своего отдела
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
	case errors.Is(err, memberRepo.ErrMemberNotFound):
		s.logger.Warn("%s: member=%d not found", op, memberID)
		return ErrMemberNotFound
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: member=%d: %v", op, memberID, err)
		return err
	default:
		s.logger.Error("%s: repository error for member=%d: %v", op, memberID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
