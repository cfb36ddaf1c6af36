package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/schedule"
)

// In-memory collaborators. Overlap checks reuse schedule.Overlaps so the
// fakes and the SQL queries agree on the boundary rule.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) addUser(role string) *model.User {
	u := &model.User{ID: uuid.New(), Name: "Jan", Surname: "Kowalski", Role: role}
	r.users[u.ID] = u
	return u
}

type fakeTrainingTypeRepo struct {
	types map[uuid.UUID]*model.TrainingType
}

func newFakeTrainingTypeRepo() *fakeTrainingTypeRepo {
	return &fakeTrainingTypeRepo{types: map[uuid.UUID]*model.TrainingType{}}
}

func (r *fakeTrainingTypeRepo) Create(_ context.Context, tt *model.TrainingType) (uuid.UUID, error) {
	if tt.ID == uuid.Nil {
		tt.ID = uuid.New()
	}
	r.types[tt.ID] = tt
	return tt.ID, nil
}

func (r *fakeTrainingTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TrainingType, error) {
	return r.types[id], nil
}

func (r *fakeTrainingTypeRepo) List(_ context.Context) ([]model.TrainingType, error) {
	out := []model.TrainingType{}
	for _, tt := range r.types {
		out = append(out, *tt)
	}
	return out, nil
}

func (r *fakeTrainingTypeRepo) addType(name string) *model.TrainingType {
	tt := &model.TrainingType{ID: uuid.New(), Name: name}
	r.types[tt.ID] = tt
	return tt
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*model.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[uuid.UUID]*model.Location{}}
}

func (r *fakeLocationRepo) Create(_ context.Context, loc *model.Location) (uuid.UUID, error) {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	r.locations[loc.ID] = loc
	return loc.ID, nil
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	return r.locations[id], nil
}

func (r *fakeLocationRepo) List(_ context.Context) ([]model.Location, error) {
	out := []model.Location{}
	for _, loc := range r.locations {
		out = append(out, *loc)
	}
	return out, nil
}

func (r *fakeLocationRepo) addLocation(name string) *model.Location {
	loc := &model.Location{ID: uuid.New(), Name: name}
	r.locations[loc.ID] = loc
	return loc
}

type fakeGroupTrainingRepo struct {
	mu        sync.Mutex
	trainings map[uuid.UUID]*model.GroupTraining
}

func newFakeGroupTrainingRepo() *fakeGroupTrainingRepo {
	return &fakeGroupTrainingRepo{trainings: map[uuid.UUID]*model.GroupTraining{}}
}

func (r *fakeGroupTrainingRepo) Create(_ context.Context, t *model.GroupTraining) (*model.GroupTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	r.trainings[t.ID] = t
	return t, nil
}

func (r *fakeGroupTrainingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.GroupTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainings[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	clone.TrainerIDs = append([]uuid.UUID{}, t.TrainerIDs...)
	clone.BasicList = append([]model.Participant{}, t.BasicList...)
	clone.ReserveList = append([]model.Participant{}, t.ReserveList...)
	return &clone, nil
}

func (r *fakeGroupTrainingRepo) Update(_ context.Context, t *model.GroupTraining) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trainings[t.ID] = t
	return nil
}

func (r *fakeGroupTrainingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trainings, id)
	return nil
}

func (r *fakeGroupTrainingRepo) ReplaceParticipants(_ context.Context, t *model.GroupTraining) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.trainings[t.ID]
	if ok {
		stored.BasicList = append([]model.Participant{}, t.BasicList...)
		stored.ReserveList = append([]model.Participant{}, t.ReserveList...)
	}
	return nil
}

func (r *fakeGroupTrainingRepo) CountOverlappingByTrainer(_ context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.trainings {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		for _, id := range t.TrainerIDs {
			if id == trainerID && schedule.Overlaps(t.StartAt, t.EndAt, start, end) {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeGroupTrainingRepo) CountOverlappingByLocation(_ context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.trainings {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if t.LocationID == locationID && schedule.Overlaps(t.StartAt, t.EndAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupTrainingRepo) List(_ context.Context, _ repository.GroupTrainingFilter) ([]model.GroupTrainingDetails, error) {
	return []model.GroupTrainingDetails{}, nil
}

func (r *fakeGroupTrainingRepo) ListByParticipant(_ context.Context, _ uuid.UUID) ([]model.GroupTrainingDetails, error) {
	return []model.GroupTrainingDetails{}, nil
}

type fakeIndividualTrainingRepo struct {
	mu        sync.Mutex
	trainings map[uuid.UUID]*model.IndividualTraining

	trainerOverlapCalls int
}

func newFakeIndividualTrainingRepo() *fakeIndividualTrainingRepo {
	return &fakeIndividualTrainingRepo{trainings: map[uuid.UUID]*model.IndividualTraining{}}
}

func (r *fakeIndividualTrainingRepo) Create(_ context.Context, t *model.IndividualTraining) (*model.IndividualTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	r.trainings[t.ID] = t
	return t, nil
}

func (r *fakeIndividualTrainingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.IndividualTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainings[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	clone.TrainerIDs = append([]uuid.UUID{}, t.TrainerIDs...)
	return &clone, nil
}

func (r *fakeIndividualTrainingRepo) UpdateStatus(_ context.Context, t *model.IndividualTraining) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.trainings[t.ID]
	if ok {
		stored.Status = t.Status
		stored.LocationID = t.LocationID
	}
	return nil
}

func (r *fakeIndividualTrainingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trainings, id)
	return nil
}

func (r *fakeIndividualTrainingRepo) CountOverlappingByTrainer(_ context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trainerOverlapCalls++
	count := 0
	for _, t := range r.trainings {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if t.Status == model.IndividualTrainingRejected {
			continue
		}
		for _, id := range t.TrainerIDs {
			if id == trainerID && schedule.Overlaps(t.StartAt, t.EndAt, start, end) {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeIndividualTrainingRepo) CountOverlappingByLocation(_ context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.trainings {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if t.Status != model.IndividualTrainingAccepted || t.LocationID == nil {
			continue
		}
		if *t.LocationID == locationID && schedule.Overlaps(t.StartAt, t.EndAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (r *fakeIndividualTrainingRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.IndividualTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.IndividualTraining{}
	for _, t := range r.trainings {
		if t.ClientID == clientID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeIndividualTrainingRepo) ListByTrainer(_ context.Context, trainerID uuid.UUID) ([]model.IndividualTraining, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.IndividualTraining{}
	for _, t := range r.trainings {
		if t.HasTrainer(trainerID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishGroupTrainingCreated(*model.GroupTraining) error { return nil }
func (noopPublisher) PublishGroupTrainingUpdated(*model.GroupTraining) error { return nil }
func (noopPublisher) PublishGroupTrainingCancelled(*model.GroupTraining, []uuid.UUID) error {
	return nil
}
func (noopPublisher) PublishGroupTrainingEnrollment(*model.GroupTraining, uuid.UUID, string) error {
	return nil
}
func (noopPublisher) PublishGroupTrainingEnrollmentCancelled(*model.GroupTraining, uuid.UUID) error {
	return nil
}
func (noopPublisher) PublishIndividualTrainingRequested(*model.IndividualTraining) error { return nil }
func (noopPublisher) PublishIndividualTrainingAccepted(*model.IndividualTraining) error  { return nil }
func (noopPublisher) PublishIndividualTrainingRejected(*model.IndividualTraining) error  { return nil }
func (noopPublisher) PublishIndividualTrainingCancelled(*model.IndividualTraining) error { return nil }
