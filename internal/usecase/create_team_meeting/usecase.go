package create_team_meeting

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	meetingTypeRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/meetingtype"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// UseCase use case для создания командной встречи.
// Руководитель отдела становится основным ведущим, участники проверяются по правилу "все свободны".
type UseCase struct {
	bookingRepo     BookingRepository
	memberRepo      MemberRepository
	meetingTypeRepo MeetingTypeRepository
	availability    AvailabilityChecker
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	meetingTypeRepo MeetingTypeRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		memberRepo:      memberRepo,
		meetingTypeRepo: meetingTypeRepo,
		availability:    availability,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания командной встречи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTeamMeeting: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateTeamMeeting: user=%d, meetingType=%d, participants=%v, date=%s, time=%s",
		req.Actor.UserID, req.MeetingTypeID, req.ParticipantIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Дата и время не в прошлом
	now := uc.timeProvider.Now()
	start := types.Combine(req.Date, req.StartTime)
	if err := validateDate(req.Date, start, now); err != nil {
		uc.logger.Warn("CreateTeamMeeting: date validation failed: %v", err)
		return nil, err
	}

	// 3. Тип встречи должен быть внутренним
	meetingType, err := uc.getMeetingType(ctx, req.MeetingTypeID)
	if err != nil {
		return nil, err
	}

	// 4. Права и руководитель отдела
	if !req.Actor.CanManageDepartment(meetingType.DepartmentID) {
		uc.logger.Warn("CreateTeamMeeting: user=%d does not manage department=%d", req.Actor.UserID, meetingType.DepartmentID)
		return nil, ErrAccessDenied
	}

	leaderID, err := uc.resolveLeader(ctx, req.Actor, meetingType.DepartmentID)
	if err != nil {
		return nil, err
	}

	// 5. Участники: руководитель проверяется наравне со всеми, если указан в списке
	participantIDs := uniqueIDs(req.ParticipantIDs)

	members, err := uc.loadMembers(ctx, append([]int64{leaderID}, participantIDs...))
	if err != nil {
		return nil, err
	}
	leader := members[0]
	participants := members[1:]

	duration := meetingType.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultMeetingDurationMinutes
	}

	var result *domain.Booking

	// 6. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокируем всех участников в порядке ID
		lockIDs := uniqueIDs(append([]int64{leaderID}, participantIDs...))
		sort.Slice(lockIDs, func(i, j int) bool { return lockIDs[i] < lockIDs[j] })
		if err := uc.memberRepo.LockMembers(txCtx, lockIDs); err != nil {
			return fmt.Errorf("%w: failed to lock members: %v", ErrInternal, err)
		}

		// 6.2. Доступность: каждый участник должен быть свободен
		availErr, err := uc.availability.CheckMembers(txCtx, participants, req.Date, req.StartTime, duration, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if availErr != nil {
			availErr.Team = true
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, availErr)
		}

		// 6.3. Создаем встречу
		status := string(domain.StatusNewBooking)
		booking := &domain.Booking{
			DepartmentID:    meetingType.DepartmentID,
			MeetingTypeID:   meetingType.ID,
			IsInternal:      true,
			Status:          domain.StatusNewBooking,
			Title:           buildTitle(req.Title, meetingType, len(participants)),
			StartDatetime:   start,
			EndDatetime:     types.AddMinutes(start, duration),
			DurationMinutes: duration,
			Notes:           req.Notes,
			CancelToken:     uuid.NewString(),
			RescheduleToken: uuid.NewString(),
			AssignedUsers:   []domain.AssignedUser{{MemberID: leaderID, IsPrimaryHost: true}},
			Participants:    internalParticipants(participantIDs),
			CreatedBy:       req.Actor.UserID,
		}
		booking.AppendHistory(domain.ActionCreated, req.Actor.UserID, now, nil, &status)

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, domain.NewStorageOverlapError([]*domain.Member{leader}))
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("CreateTeamMeeting: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateTeamMeeting: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateTeamMeeting: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.notifier.BookingCreated(ctx, result)

	uc.logger.Info("CreateTeamMeeting: successfully created booking id=%d with %d participants", result.ID, len(participants))
	return bookingModels.FromDomainBooking(result), nil
}

func (uc *UseCase) getMeetingType(ctx context.Context, id int64) (*domain.MeetingType, error) {
	meetingType, err := uc.meetingTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingTypeRepo.ErrMeetingTypeNotFound) {
			uc.logger.Warn("CreateTeamMeeting: meeting type id=%d not found", id)
			return nil, ErrMeetingTypeNotFound
		}
		uc.logger.Error("CreateTeamMeeting: failed to get meeting type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get meeting type: %v", ErrInternal, err)
	}

	if !meetingType.IsActive {
		return nil, fmt.Errorf("%w: meeting type is not active", ErrInvalidInput)
	}
	if !meetingType.IsInternal {
		uc.logger.Warn("CreateTeamMeeting: meeting type id=%d is not internal", id)
		return nil, fmt.Errorf("%w: team meetings require an internal meeting type", ErrInvalidInput)
	}

	return meetingType, nil
}

// resolveLeader руководитель-инициатор ведет встречу сам, для администратора берется руководитель отдела
func (uc *UseCase) resolveLeader(ctx context.Context, actor *domain.Actor, departmentID int64) (int64, error) {
	if actor.LeadsDepartment(departmentID) {
		return actor.UserID, nil
	}

	department, err := uc.memberRepo.GetDepartment(ctx, departmentID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrDepartmentNotFound) {
			return 0, fmt.Errorf("%w: department %d not found", ErrInvalidInput, departmentID)
		}
		uc.logger.Error("CreateTeamMeeting: failed to get department id=%d: %v", departmentID, err)
		return 0, fmt.Errorf("%w: failed to get department: %v", ErrInternal, err)
	}
	if department.LeaderID == nil {
		uc.logger.Warn("CreateTeamMeeting: department id=%d has no leader", departmentID)
		return 0, fmt.Errorf("%w: department has no leader", ErrInvalidInput)
	}

	return *department.LeaderID, nil
}

// loadMembers возвращает участников в порядке ids
func (uc *UseCase) loadMembers(ctx context.Context, ids []int64) ([]*domain.Member, error) {
	found, err := uc.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateTeamMeeting: failed to get members: %v", err)
		return nil, fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Member, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	members := make([]*domain.Member, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			uc.logger.Warn("CreateTeamMeeting: member id=%d not found", id)
			return nil, fmt.Errorf("%w: member %d", ErrMemberNotFound, id)
		}
		members = append(members, m)
	}
	return members, nil
}

func internalParticipants(ids []int64) []domain.Participant {
	participants := make([]domain.Participant, 0, len(ids))
	for _, id := range ids {
		id := id
		participants = append(participants, domain.Participant{
			MemberID:        &id,
			ParticipantType: domain.ParticipantInternal,
			ResponseStatus:  domain.ResponsePending,
		})
	}
	return participants
}
