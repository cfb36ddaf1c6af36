package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/events"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/schedule"
)

// GroupTrainingRequest carries the schedule fields of a group training for
// both create and update.
type GroupTrainingRequest struct {
	TrainingTypeID uuid.UUID
	TrainerIDs     []uuid.UUID
	LocationID     uuid.UUID
	StartAt        time.Time
	EndAt          time.Time
	Capacity       int
}

type GroupTrainingService interface {
	Create(ctx context.Context, req GroupTrainingRequest) (*model.GroupTraining, error)
	Update(ctx context.Context, id uuid.UUID, req GroupTrainingRequest) (*model.GroupTraining, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error)
	Enroll(ctx context.Context, trainingID, userID uuid.UUID) (schedule.Placement, error)
	CancelEnrollment(ctx context.Context, trainingID, userID uuid.UUID) error
	GetDetails(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error)
	List(ctx context.Context, filter repository.GroupTrainingFilter) ([]model.GroupTrainingDetails, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.GroupTrainingDetails, error)
}

type groupTrainingService struct {
	groupRepo    repository.GroupTrainingRepository
	typeRepo     repository.TrainingTypeRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	occupancy    *OccupancyChecker
	locker       *schedule.ResourceLocker
	publisher    events.EventPublisher
	now          func() time.Time
}

// NewGroupTrainingService wires the group training lifecycle. A nil clock
// defaults to time.Now; tests inject a fixed one.
func NewGroupTrainingService(
	groupRepo repository.GroupTrainingRepository,
	typeRepo repository.TrainingTypeRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	occupancy *OccupancyChecker,
	locker *schedule.ResourceLocker,
	publisher events.EventPublisher,
	clock func() time.Time,
) GroupTrainingService {
	if clock == nil {
		clock = time.Now
	}
	return &groupTrainingService{
		groupRepo:    groupRepo,
		typeRepo:     typeRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		occupancy:    occupancy,
		locker:       locker,
		publisher:    publisher,
		now:          clock,
	}
}

func (s *groupTrainingService) Create(ctx context.Context, req GroupTrainingRequest) (*model.GroupTraining, error) {
	if err := s.validateSchedule(ctx, req, nil); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(append(append([]uuid.UUID{}, req.TrainerIDs...), req.LocationID)...)
	defer unlock()

	if err := s.checkOccupancy(ctx, req, nil); err != nil {
		return nil, err
	}

	training := &model.GroupTraining{
		TrainingTypeID: req.TrainingTypeID,
		LocationID:     req.LocationID,
		TrainerIDs:     req.TrainerIDs,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Capacity:       req.Capacity,
		BasicList:      []model.Participant{},
		ReserveList:    []model.Participant{},
	}

	created, err := s.groupRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishGroupTrainingCreated(created)

	return created, nil
}

func (s *groupTrainingService) Update(ctx context.Context, id uuid.UUID, req GroupTrainingRequest) (*model.GroupTraining, error) {
	existing, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTrainingNotFound
	}

	if err := s.validateSchedule(ctx, req, &id); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(append(append([]uuid.UUID{}, req.TrainerIDs...), req.LocationID)...)
	defer unlock()

	if err := s.checkOccupancy(ctx, req, &id); err != nil {
		return nil, err
	}

	existing.TrainingTypeID = req.TrainingTypeID
	existing.LocationID = req.LocationID
	existing.TrainerIDs = req.TrainerIDs
	existing.StartAt = req.StartAt
	existing.EndAt = req.EndAt
	existing.Capacity = req.Capacity

	if err := s.groupRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	go s.publisher.PublishGroupTrainingUpdated(existing)

	return existing, nil
}

// Delete removes the training and returns the pre-deletion snapshot so the
// caller still knows whom to notify.
func (s *groupTrainingService) Delete(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error) {
	training, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if training == nil {
		return nil, ErrTrainingNotFound
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	go s.publisher.PublishGroupTrainingCancelled(training, participantIDs(training))

	return training, nil
}

func (s *groupTrainingService) Enroll(ctx context.Context, trainingID, userID uuid.UUID) (schedule.Placement, error) {
	// serialize roster writes per training so two concurrent enrollments
	// cannot both land on the last basic slot
	unlock := s.locker.Lock(trainingID)
	defer unlock()

	training, err := s.groupRepo.FindByID(ctx, trainingID)
	if err != nil {
		return "", err
	}
	if training == nil {
		return "", ErrTrainingNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if training.StartAt.Before(s.now()) {
		return "", schedule.ErrPastDate
	}

	placement, err := schedule.Enroll(training, model.NewParticipant(user))
	if err != nil {
		return "", err
	}

	if err := s.groupRepo.ReplaceParticipants(ctx, training); err != nil {
		return "", err
	}

	go s.publisher.PublishGroupTrainingEnrollment(training, userID, string(placement))

	return placement, nil
}

func (s *groupTrainingService) CancelEnrollment(ctx context.Context, trainingID, userID uuid.UUID) error {
	unlock := s.locker.Lock(trainingID)
	defer unlock()

	training, err := s.groupRepo.FindByID(ctx, trainingID)
	if err != nil {
		return err
	}
	if training == nil {
		return ErrTrainingNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if training.StartAt.Before(s.now()) {
		return schedule.ErrPastDate
	}

	if err := schedule.Cancel(training, userID); err != nil {
		return err
	}

	if err := s.groupRepo.ReplaceParticipants(ctx, training); err != nil {
		return err
	}

	go s.publisher.PublishGroupTrainingEnrollmentCancelled(training, userID)

	return nil
}

func (s *groupTrainingService) GetDetails(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error) {
	training, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if training == nil {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}

func (s *groupTrainingService) List(ctx context.Context, filter repository.GroupTrainingFilter) ([]model.GroupTrainingDetails, error) {
	return s.groupRepo.List(ctx, filter)
}

func (s *groupTrainingService) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.GroupTrainingDetails, error) {
	return s.groupRepo.ListByParticipant(ctx, userID)
}

// validateSchedule runs the ordered pre-occupancy checks: training type,
// trainer existence and capability, location existence, then the interval.
func (s *groupTrainingService) validateSchedule(ctx context.Context, req GroupTrainingRequest, _ *uuid.UUID) error {
	trainingType, err := s.typeRepo.FindByID(ctx, req.TrainingTypeID)
	if err != nil {
		return err
	}
	if trainingType == nil {
		return ErrTrainingTypeNotFound
	}

	if len(req.TrainerIDs) == 0 {
		return ErrTrainerNotFound
	}
	for _, trainerID := range req.TrainerIDs {
		trainer, err := s.userRepo.FindByID(ctx, trainerID)
		if err != nil {
			return err
		}
		if trainer == nil || !trainer.HasRole(model.RoleTrainer) {
			return ErrTrainerNotFound
		}
	}

	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrLocationNotFound
	}

	return schedule.ValidateInterval(req.StartAt, req.EndAt, s.now())
}

// checkOccupancy verifies the location first, then every trainer, matching
// the error order callers assert on.
func (s *groupTrainingService) checkOccupancy(ctx context.Context, req GroupTrainingRequest, excludeID *uuid.UUID) error {
	free, err := s.occupancy.IsLocationFree(ctx, req.LocationID, req.StartAt, req.EndAt, excludeID)
	if err != nil {
		return err
	}
	if !free {
		return ErrLocationOccupied
	}

	for _, trainerID := range req.TrainerIDs {
		free, err := s.occupancy.IsTrainerFree(ctx, trainerID, req.StartAt, req.EndAt, excludeID)
		if err != nil {
			return err
		}
		if !free {
			return ErrTrainerOccupied
		}
	}

	return nil
}

func participantIDs(t *model.GroupTraining) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.BasicList)+len(t.ReserveList))
	for _, p := range t.BasicList {
		ids = append(ids, p.UserID)
	}
	for _, p := range t.ReserveList {
		ids = append(ids, p.UserID)
	}
	return ids
}
