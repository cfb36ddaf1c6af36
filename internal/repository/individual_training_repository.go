package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
)

type IndividualTrainingRepository interface {
	Create(ctx context.Context, t *model.IndividualTraining) (*model.IndividualTraining, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.IndividualTraining, error)
	UpdateStatus(ctx context.Context, t *model.IndividualTraining) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOverlappingByTrainer(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error)
	CountOverlappingByLocation(ctx context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.IndividualTraining, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.IndividualTraining, error)
}

type postgresIndividualTrainingRepository struct {
	db *sqlx.DB
}

func NewPostgresIndividualTrainingRepository(db *sqlx.DB) IndividualTrainingRepository {
	return &postgresIndividualTrainingRepository{db: db}
}

func (r *postgresIndividualTrainingRepository) Create(ctx context.Context, t *model.IndividualTraining) (*model.IndividualTraining, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO individual_trainings (client_id, start_at, end_at, status, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := tx.QueryRowxContext(ctx, query, t.ClientID, t.StartAt, t.EndAt, t.Status, t.Remarks)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, err
	}

	for _, trainerID := range t.TrainerIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO individual_training_trainers (training_id, trainer_id) VALUES ($1, $2)`,
			t.ID, trainerID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *postgresIndividualTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.IndividualTraining, error) {
	var t model.IndividualTraining
	query := `SELECT id, client_id, location_id, start_at, end_at, status, remarks, created_at FROM individual_trainings WHERE id = $1`
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadTrainers(ctx, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// UpdateStatus persists a workflow transition: the status and the location
// attached or cleared by it. Everything else about a request is immutable.
func (r *postgresIndividualTrainingRepository) UpdateStatus(ctx context.Context, t *model.IndividualTraining) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE individual_trainings SET status = $2, location_id = $3 WHERE id = $1`,
		t.ID, t.Status, t.LocationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresIndividualTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM individual_trainings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// A rejected request no longer reserves its trainer; requested and
// accepted ones do.
func (r *postgresIndividualTrainingRepository) CountOverlappingByTrainer(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM individual_trainings t
		JOIN individual_training_trainers tt ON tt.training_id = t.id
		WHERE tt.trainer_id = $1 AND t.status <> 'rejected'
		  AND t.start_at < $3 AND $2 < t.end_at
		  AND ($4::uuid IS NULL OR t.id <> $4)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, trainerID, start, end, excludeID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Only accepted trainings hold a location.
func (r *postgresIndividualTrainingRepository) CountOverlappingByLocation(ctx context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM individual_trainings t
		WHERE t.location_id = $1 AND t.status = 'accepted'
		  AND t.start_at < $3 AND $2 < t.end_at
		  AND ($4::uuid IS NULL OR t.id <> $4)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, locationID, start, end, excludeID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresIndividualTrainingRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.IndividualTraining, error) {
	var trainings []model.IndividualTraining
	query := `
		SELECT id, client_id, location_id, start_at, end_at, status, remarks, created_at
		FROM individual_trainings
		WHERE client_id = $1
		ORDER BY start_at DESC
	`
	err := r.db.SelectContext(ctx, &trainings, query, clientID)
	if err != nil {
		return nil, err
	}
	for i := range trainings {
		if err := r.loadTrainers(ctx, &trainings[i]); err != nil {
			return nil, err
		}
	}
	if trainings == nil {
		trainings = []model.IndividualTraining{}
	}
	return trainings, nil
}

func (r *postgresIndividualTrainingRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.IndividualTraining, error) {
	var trainings []model.IndividualTraining
	query := `
		SELECT t.id, t.client_id, t.location_id, t.start_at, t.end_at, t.status, t.remarks, t.created_at
		FROM individual_trainings t
		JOIN individual_training_trainers tt ON tt.training_id = t.id
		WHERE tt.trainer_id = $1
		ORDER BY t.start_at DESC
	`
	err := r.db.SelectContext(ctx, &trainings, query, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range trainings {
		if err := r.loadTrainers(ctx, &trainings[i]); err != nil {
			return nil, err
		}
	}
	if trainings == nil {
		trainings = []model.IndividualTraining{}
	}
	return trainings, nil
}

func (r *postgresIndividualTrainingRepository) loadTrainers(ctx context.Context, t *model.IndividualTraining) error {
	return r.db.SelectContext(ctx, &t.TrainerIDs,
		`SELECT trainer_id FROM individual_training_trainers WHERE training_id = $1`, t.ID)
}
