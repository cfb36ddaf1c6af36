package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
)

// EventPublisher is the notification sink. Publishing is fire-and-forget:
// a failure here never rolls back a completed scheduling transition.
type EventPublisher interface {
	PublishGroupTrainingCreated(t *model.GroupTraining) error
	PublishGroupTrainingUpdated(t *model.GroupTraining) error
	PublishGroupTrainingCancelled(t *model.GroupTraining, recipientIDs []uuid.UUID) error
	PublishGroupTrainingEnrollment(t *model.GroupTraining, userID uuid.UUID, placement string) error
	PublishGroupTrainingEnrollmentCancelled(t *model.GroupTraining, userID uuid.UUID) error
	PublishIndividualTrainingRequested(t *model.IndividualTraining) error
	PublishIndividualTrainingAccepted(t *model.IndividualTraining) error
	PublishIndividualTrainingRejected(t *model.IndividualTraining) error
	PublishIndividualTrainingCancelled(t *model.IndividualTraining) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type GroupTrainingEvent struct {
	EventType    string      `json:"event_type"`
	TrainingID   uuid.UUID   `json:"training_id"`
	LocationID   uuid.UUID   `json:"location_id"`
	StartAt      time.Time   `json:"start_at"`
	EndAt        time.Time   `json:"end_at"`
	RecipientIDs []uuid.UUID `json:"recipient_ids,omitempty"`
}

type EnrollmentEvent struct {
	EventType  string    `json:"event_type"`
	TrainingID uuid.UUID `json:"training_id"`
	UserID     uuid.UUID `json:"user_id"`
	Placement  string    `json:"placement,omitempty"`
	StartAt    time.Time `json:"start_at"`
}

type IndividualTrainingEvent struct {
	EventType    string      `json:"event_type"`
	TrainingID   uuid.UUID   `json:"training_id"`
	ClientID     uuid.UUID   `json:"client_id"`
	LocationID   *uuid.UUID  `json:"location_id,omitempty"`
	StartAt      time.Time   `json:"start_at"`
	EndAt        time.Time   `json:"end_at"`
	Status       string      `json:"status"`
	RecipientIDs []uuid.UUID `json:"recipient_ids"`
}

func (p *NatsPublisher) PublishGroupTrainingCreated(t *model.GroupTraining) error {
	return p.publishGroupEvent("training.group.created", t, t.TrainerIDs)
}

func (p *NatsPublisher) PublishGroupTrainingUpdated(t *model.GroupTraining) error {
	recipients := append(append([]uuid.UUID{}, t.TrainerIDs...), participantIDs(t)...)
	return p.publishGroupEvent("training.group.updated", t, recipients)
}

func (p *NatsPublisher) PublishGroupTrainingCancelled(t *model.GroupTraining, recipientIDs []uuid.UUID) error {
	return p.publishGroupEvent("training.group.cancelled", t, recipientIDs)
}

func (p *NatsPublisher) PublishGroupTrainingEnrollment(t *model.GroupTraining, userID uuid.UUID, placement string) error {
	event := EnrollmentEvent{
		EventType:  "training.group.enrolled",
		TrainingID: t.ID,
		UserID:     userID,
		Placement:  placement,
		StartAt:    t.StartAt,
	}
	return p.publish(event.EventType, event)
}

func (p *NatsPublisher) PublishGroupTrainingEnrollmentCancelled(t *model.GroupTraining, userID uuid.UUID) error {
	event := EnrollmentEvent{
		EventType:  "training.group.enrollment_cancelled",
		TrainingID: t.ID,
		UserID:     userID,
		StartAt:    t.StartAt,
	}
	return p.publish(event.EventType, event)
}

func (p *NatsPublisher) PublishIndividualTrainingRequested(t *model.IndividualTraining) error {
	return p.publishIndividualEvent("training.individual.requested", t, t.TrainerIDs)
}

func (p *NatsPublisher) PublishIndividualTrainingAccepted(t *model.IndividualTraining) error {
	return p.publishIndividualEvent("training.individual.accepted", t, []uuid.UUID{t.ClientID})
}

func (p *NatsPublisher) PublishIndividualTrainingRejected(t *model.IndividualTraining) error {
	return p.publishIndividualEvent("training.individual.rejected", t, []uuid.UUID{t.ClientID})
}

func (p *NatsPublisher) PublishIndividualTrainingCancelled(t *model.IndividualTraining) error {
	return p.publishIndividualEvent("training.individual.cancelled", t, t.TrainerIDs)
}

func (p *NatsPublisher) publishGroupEvent(subject string, t *model.GroupTraining, recipientIDs []uuid.UUID) error {
	event := GroupTrainingEvent{
		EventType:    subject,
		TrainingID:   t.ID,
		LocationID:   t.LocationID,
		StartAt:      t.StartAt,
		EndAt:        t.EndAt,
		RecipientIDs: recipientIDs,
	}
	return p.publish(subject, event)
}

func (p *NatsPublisher) publishIndividualEvent(subject string, t *model.IndividualTraining, recipientIDs []uuid.UUID) error {
	event := IndividualTrainingEvent{
		EventType:    subject,
		TrainingID:   t.ID,
		ClientID:     t.ClientID,
		LocationID:   t.LocationID,
		StartAt:      t.StartAt,
		EndAt:        t.EndAt,
		Status:       string(t.Status),
		RecipientIDs: recipientIDs,
	}
	return p.publish(subject, event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

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
