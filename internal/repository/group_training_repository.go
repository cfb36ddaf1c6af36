package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
)

// GroupTrainingFilter narrows listings by date range and training type.
type GroupTrainingFilter struct {
	From           *time.Time
	To             *time.Time
	TrainingTypeID *uuid.UUID
}

type GroupTrainingRepository interface {
	Create(ctx context.Context, t *model.GroupTraining) (*model.GroupTraining, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error)
	Update(ctx context.Context, t *model.GroupTraining) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceParticipants(ctx context.Context, t *model.GroupTraining) error
	CountOverlappingByTrainer(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error)
	CountOverlappingByLocation(ctx context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error)
	List(ctx context.Context, filter GroupTrainingFilter) ([]model.GroupTrainingDetails, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.GroupTrainingDetails, error)
}

type postgresGroupTrainingRepository struct {
	db *sqlx.DB
}

func NewPostgresGroupTrainingRepository(db *sqlx.DB) GroupTrainingRepository {
	return &postgresGroupTrainingRepository{db: db}
}

func (r *postgresGroupTrainingRepository) Create(ctx context.Context, t *model.GroupTraining) (*model.GroupTraining, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO group_trainings (training_type_id, location_id, start_at, end_at, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := tx.QueryRowxContext(ctx, query, t.TrainingTypeID, t.LocationID, t.StartAt, t.EndAt, t.Capacity)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, err
	}

	if err := insertTrainers(ctx, tx, t.ID, t.TrainerIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *postgresGroupTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GroupTraining, error) {
	var t model.GroupTraining
	query := `SELECT id, training_type_id, location_id, start_at, end_at, capacity, created_at FROM group_trainings WHERE id = $1`
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	err = r.db.SelectContext(ctx, &t.TrainerIDs,
		`SELECT trainer_id FROM group_training_trainers WHERE training_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}

	type participantRow struct {
		model.Participant
		List     string `db:"list"`
		Position int    `db:"position"`
	}
	var rows []participantRow
	err = r.db.SelectContext(ctx, &rows, `
		SELECT user_id, name, surname, avatar_url, list, position
		FROM group_training_participants
		WHERE training_id = $1
		ORDER BY list, position
	`, id)
	if err != nil {
		return nil, err
	}

	t.BasicList = []model.Participant{}
	t.ReserveList = []model.Participant{}
	for _, row := range rows {
		if row.List == "basic" {
			t.BasicList = append(t.BasicList, row.Participant)
		} else {
			t.ReserveList = append(t.ReserveList, row.Participant)
		}
	}

	return &t, nil
}

// Update replaces the schedule fields and the trainer set. Participant
// lists are untouched; they only change through ReplaceParticipants.
func (r *postgresGroupTrainingRepository) Update(ctx context.Context, t *model.GroupTraining) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE group_trainings
		SET training_type_id = $2, location_id = $3, start_at = $4, end_at = $5, capacity = $6
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, query, t.ID, t.TrainingTypeID, t.LocationID, t.StartAt, t.EndAt, t.Capacity)
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_training_trainers WHERE training_id = $1`, t.ID); err != nil {
		return err
	}
	if err := insertTrainers(ctx, tx, t.ID, t.TrainerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresGroupTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM group_trainings WHERE id = $1`, id)
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

// ReplaceParticipants writes both rosters back in one transaction so a
// reader never sees a half-applied enrollment.
func (r *postgresGroupTrainingRepository) ReplaceParticipants(ctx context.Context, t *model.GroupTraining) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_training_participants WHERE training_id = $1`, t.ID); err != nil {
		return err
	}

	insert := `
		INSERT INTO group_training_participants (training_id, user_id, name, surname, avatar_url, list, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, p := range t.BasicList {
		if _, err := tx.ExecContext(ctx, insert, t.ID, p.UserID, p.Name, p.Surname, p.AvatarURL, "basic", i); err != nil {
			return err
		}
	}
	for i, p := range t.ReserveList {
		if _, err := tx.ExecContext(ctx, insert, t.ID, p.UserID, p.Name, p.Surname, p.AvatarURL, "reserve", i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postgresGroupTrainingRepository) CountOverlappingByTrainer(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	// half-open intervals: t.start_at < end AND start < t.end_at
	query := `
		SELECT COUNT(*)
		FROM group_trainings t
		JOIN group_training_trainers tt ON tt.training_id = t.id
		WHERE tt.trainer_id = $1 AND t.start_at < $3 AND $2 < t.end_at
		  AND ($4::uuid IS NULL OR t.id <> $4)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, trainerID, start, end, excludeID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresGroupTrainingRepository) CountOverlappingByLocation(ctx context.Context, locationID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM group_trainings t
		WHERE t.location_id = $1 AND t.start_at < $3 AND $2 < t.end_at
		  AND ($4::uuid IS NULL OR t.id <> $4)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, locationID, start, end, excludeID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

const groupTrainingDetailsQuery = `
	SELECT
		t.id,
		tt.name AS training_type,
		l.name AS location_name,
		COALESCE(string_agg(u.name || ' ' || u.surname, ', ' ORDER BY gt.position), '') AS trainer_names,
		t.start_at,
		t.end_at,
		t.capacity,
		(SELECT COUNT(*) FROM group_training_participants p WHERE p.training_id = t.id AND p.list = 'basic') AS enrolled
	FROM group_trainings t
	JOIN training_types tt ON tt.id = t.training_type_id
	JOIN locations l ON l.id = t.location_id
	LEFT JOIN group_training_trainers gt ON gt.training_id = t.id
	LEFT JOIN users u ON u.id = gt.trainer_id
`

func (r *postgresGroupTrainingRepository) List(ctx context.Context, filter GroupTrainingFilter) ([]model.GroupTrainingDetails, error) {
	query := groupTrainingDetailsQuery + ` WHERE 1=1`
	args := []interface{}{}
	argID := 1
	if filter.From != nil {
		query += fmt.Sprintf(" AND t.end_at > $%d", argID)
		args = append(args, *filter.From)
		argID++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND t.start_at < $%d", argID)
		args = append(args, *filter.To)
		argID++
	}
	if filter.TrainingTypeID != nil {
		query += fmt.Sprintf(" AND t.training_type_id = $%d", argID)
		args = append(args, *filter.TrainingTypeID)
		argID++
	}
	query += ` GROUP BY t.id, tt.name, l.name ORDER BY t.start_at ASC`

	var trainings []model.GroupTrainingDetails
	err := r.db.SelectContext(ctx, &trainings, query, args...)
	if err != nil {
		return nil, err
	}
	if trainings == nil {
		trainings = []model.GroupTrainingDetails{}
	}
	return trainings, nil
}

func (r *postgresGroupTrainingRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.GroupTrainingDetails, error) {
	query := groupTrainingDetailsQuery + `
	JOIN group_training_participants gp ON gp.training_id = t.id
	WHERE gp.user_id = $1
	GROUP BY t.id, tt.name, l.name
	ORDER BY t.start_at DESC`

	var trainings []model.GroupTrainingDetails
	err := r.db.SelectContext(ctx, &trainings, query, userID)
	if err != nil {
		return nil, err
	}
	if trainings == nil {
		trainings = []model.GroupTrainingDetails{}
	}
	return trainings, nil
}

func insertTrainers(ctx context.Context, tx *sqlx.Tx, trainingID uuid.UUID, trainerIDs []uuid.UUID) error {
	for i, trainerID := range trainerIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_training_trainers (training_id, trainer_id, position) VALUES ($1, $2, $3)`,
			trainingID, trainerID, i)
		if err != nil {
			return err
		}
	}
	return nil
}
