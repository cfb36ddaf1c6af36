package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
)

// OccupancyChecker answers whether a trainer or a location is free over a
// candidate window. Both group and individual trainings reserve their
// resources. The checker only reports; whether occupancy is fatal is the
// calling service's decision.
type OccupancyChecker struct {
	groupRepo      repository.GroupTrainingRepository
	individualRepo repository.IndividualTrainingRepository
}

func NewOccupancyChecker(groupRepo repository.GroupTrainingRepository, individualRepo repository.IndividualTrainingRepository) *OccupancyChecker {
	return &OccupancyChecker{groupRepo: groupRepo, individualRepo: individualRepo}
}

// IsTrainerFree reports whether no other training has the trainer assigned
// over a window overlapping [start, end). excludeID lets an update ignore
// the training being updated.
func (c *OccupancyChecker) IsTrainerFree(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	count, err := c.groupRepo.CountOverlappingByTrainer(ctx, trainerID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	count, err = c.individualRepo.CountOverlappingByTrainer(ctx, trainerID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// IsLocationFree reports whether no other training reserves the location
// over a window overlapping [start, end).
func (c *OccupancyChecker) IsLocationFree(ctx context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	count, err := c.groupRepo.CountOverlappingByLocation(ctx, locationID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	count, err = c.individualRepo.CountOverlappingByLocation(ctx, locationID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
