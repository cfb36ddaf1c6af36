package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupTraining is a scheduled group session. BasicList holds up to
// Capacity participants in arrival order; ReserveList is the unbounded
// waitlist, also in arrival order.
type GroupTraining struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	TrainingTypeID uuid.UUID     `db:"training_type_id" json:"training_type_id"`
	LocationID     uuid.UUID     `db:"location_id" json:"location_id"`
	TrainerIDs     []uuid.UUID   `json:"trainer_ids"`
	StartAt        time.Time     `db:"start_at" json:"start_at"`
	EndAt          time.Time     `db:"end_at" json:"end_at"`
	Capacity       int           `db:"capacity" json:"capacity"`
	BasicList      []Participant `json:"basic_list"`
	ReserveList    []Participant `json:"reserve_list"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// GroupTrainingDetails is the read model for listings: the training joined
// with its type, location and trainer names.
type GroupTrainingDetails struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TrainingType string    `db:"training_type" json:"training_type"`
	LocationName string    `db:"location_name" json:"location_name"`
	TrainerNames string    `db:"trainer_names" json:"trainer_names"`
	StartAt      time.Time `db:"start_at" json:"start_at"`
	EndAt        time.Time `db:"end_at" json:"end_at"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Enrolled     int       `db:"enrolled" json:"enrolled"`
}

type IndividualTrainingStatus string

const (
	IndividualTrainingRequested IndividualTrainingStatus = "requested"
	IndividualTrainingAccepted  IndividualTrainingStatus = "accepted"
	IndividualTrainingRejected  IndividualTrainingStatus = "rejected"
)

// IndividualTraining is a one-on-one session requested by a client.
// LocationID is set while the training is accepted and nil otherwise.
type IndividualTraining struct {
	ID         uuid.UUID                `db:"id" json:"id"`
	ClientID   uuid.UUID                `db:"client_id" json:"client_id"`
	TrainerIDs []uuid.UUID              `json:"trainer_ids"`
	LocationID *uuid.UUID               `db:"location_id" json:"location_id,omitempty"`
	StartAt    time.Time                `db:"start_at" json:"start_at"`
	EndAt      time.Time                `db:"end_at" json:"end_at"`
	Status     IndividualTrainingStatus `db:"status" json:"status"`
	Remarks    string                   `db:"remarks" json:"remarks"`
	CreatedAt  time.Time                `db:"created_at" json:"created_at"`
}

// HasTrainer reports whether the trainer is among those the training was
// requested from.
func (t *IndividualTraining) HasTrainer(trainerID uuid.UUID) bool {
	for _, id := range t.TrainerIDs {
		if id == trainerID {
			return true
		}
	}
	return false
}
