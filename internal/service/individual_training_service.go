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

// IndividualTrainingRequest is a client's one-on-one booking request.
type IndividualTrainingRequest struct {
	TrainerID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Remarks   string
}

type IndividualTrainingService interface {
	Request(ctx context.Context, clientID uuid.UUID, req IndividualTrainingRequest) (*model.IndividualTraining, error)
	Accept(ctx context.Context, trainerID, trainingID, locationID uuid.UUID) (*model.IndividualTraining, error)
	Reject(ctx context.Context, trainerID, trainingID uuid.UUID) (*model.IndividualTraining, error)
	Cancel(ctx context.Context, clientID, trainingID uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.IndividualTraining, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.IndividualTraining, error)
}

type individualTrainingService struct {
	individualRepo repository.IndividualTrainingRepository
	locationRepo   repository.LocationRepository
	userRepo       repository.UserRepository
	occupancy      *OccupancyChecker
	locker         *schedule.ResourceLocker
	publisher      events.EventPublisher
	now            func() time.Time
}

func NewIndividualTrainingService(
	individualRepo repository.IndividualTrainingRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	occupancy *OccupancyChecker,
	locker *schedule.ResourceLocker,
	publisher events.EventPublisher,
	clock func() time.Time,
) IndividualTrainingService {
	if clock == nil {
		clock = time.Now
	}
	return &individualTrainingService{
		individualRepo: individualRepo,
		locationRepo:   locationRepo,
		userRepo:       userRepo,
		occupancy:      occupancy,
		locker:         locker,
		publisher:      publisher,
		now:            clock,
	}
}

func (s *individualTrainingService) Request(ctx context.Context, clientID uuid.UUID, req IndividualTrainingRequest) (*model.IndividualTraining, error) {
	client, err := s.userRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrUserNotFound
	}

	trainer, err := s.userRepo.FindByID(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil || !trainer.HasRole(model.RoleTrainer) {
		return nil, ErrTrainerNotFound
	}

	// temporal validity comes before any occupancy lookup
	if err := schedule.ValidateInterval(req.StartAt, req.EndAt, s.now()); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(req.TrainerID)
	defer unlock()

	free, err := s.occupancy.IsTrainerFree(ctx, req.TrainerID, req.StartAt, req.EndAt, nil)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrTrainerOccupied
	}

	training := &model.IndividualTraining{
		ClientID:   clientID,
		TrainerIDs: []uuid.UUID{req.TrainerID},
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Status:     model.IndividualTrainingRequested,
		Remarks:    req.Remarks,
	}

	created, err := s.individualRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishIndividualTrainingRequested(created)

	return created, nil
}

func (s *individualTrainingService) Accept(ctx context.Context, trainerID, trainingID, locationID uuid.UUID) (*model.IndividualTraining, error) {
	training, err := s.loadForTrainer(ctx, trainerID, trainingID)
	if err != nil {
		return nil, err
	}

	if training.Status == model.IndividualTrainingAccepted {
		return nil, ErrAlreadyAccepted
	}

	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}

	unlock := s.locker.Lock(locationID)
	defer unlock()

	// the trainer is occupied by this very request, so only the location
	// is conflict-checked here
	free, err := s.occupancy.IsLocationFree(ctx, locationID, training.StartAt, training.EndAt, &training.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrLocationOccupied
	}

	training.Status = model.IndividualTrainingAccepted
	training.LocationID = &locationID

	if err := s.individualRepo.UpdateStatus(ctx, training); err != nil {
		return nil, err
	}

	go s.publisher.PublishIndividualTrainingAccepted(training)

	return training, nil
}

func (s *individualTrainingService) Reject(ctx context.Context, trainerID, trainingID uuid.UUID) (*model.IndividualTraining, error) {
	training, err := s.loadForTrainer(ctx, trainerID, trainingID)
	if err != nil {
		return nil, err
	}

	if training.Status == model.IndividualTrainingRejected {
		return nil, ErrAlreadyRejected
	}

	training.Status = model.IndividualTrainingRejected
	// a training holds a location only while accepted
	training.LocationID = nil

	if err := s.individualRepo.UpdateStatus(ctx, training); err != nil {
		return nil, err
	}

	go s.publisher.PublishIndividualTrainingRejected(training)

	return training, nil
}

// Cancel lets the requesting client withdraw a training that has not been
// decided yet.
func (s *individualTrainingService) Cancel(ctx context.Context, clientID, trainingID uuid.UUID) error {
	training, err := s.individualRepo.FindByID(ctx, trainingID)
	if err != nil {
		return err
	}
	if training == nil {
		return ErrTrainingNotFound
	}

	if training.ClientID != clientID {
		return ErrAccessDenied
	}

	if training.StartAt.Before(s.now()) {
		return schedule.ErrPastDate
	}

	switch training.Status {
	case model.IndividualTrainingAccepted:
		return ErrAlreadyAccepted
	case model.IndividualTrainingRejected:
		return ErrAlreadyRejected
	}

	if err := s.individualRepo.Delete(ctx, trainingID); err != nil {
		return err
	}

	go s.publisher.PublishIndividualTrainingCancelled(training)

	return nil
}

func (s *individualTrainingService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.IndividualTraining, error) {
	return s.individualRepo.ListByClient(ctx, clientID)
}

func (s *individualTrainingService) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.IndividualTraining, error) {
	return s.individualRepo.ListByTrainer(ctx, trainerID)
}

// loadForTrainer runs the shared accept/reject preamble: the training must
// exist, its start must not have elapsed, and the acting user must be a
// trainer the training was requested from.
func (s *individualTrainingService) loadForTrainer(ctx context.Context, trainerID, trainingID uuid.UUID) (*model.IndividualTraining, error) {
	training, err := s.individualRepo.FindByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if training == nil {
		return nil, ErrTrainingNotFound
	}

	if training.StartAt.Before(s.now()) {
		return nil, schedule.ErrPastDate
	}

	trainer, err := s.userRepo.FindByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil || !trainer.HasRole(model.RoleTrainer) {
		return nil, ErrUserNotFound
	}
	if !training.HasTrainer(trainerID) {
		return nil, ErrAccessDenied
	}

	return training, nil
}
