package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
)

type TrainingTypeRepository interface {
	Create(ctx context.Context, tt *model.TrainingType) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingType, error)
	List(ctx context.Context) ([]model.TrainingType, error)
}

type postgresTrainingTypeRepository struct {
	db *sqlx.DB
}

func NewPostgresTrainingTypeRepository(db *sqlx.DB) TrainingTypeRepository {
	return &postgresTrainingTypeRepository{db: db}
}

func (r *postgresTrainingTypeRepository) Create(ctx context.Context, tt *model.TrainingType) (uuid.UUID, error) {
	query := `INSERT INTO training_types (name, description, duration_minutes) VALUES ($1, $2, $3) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, tt.Name, tt.Description, tt.DurationMinutes).Scan(&newID)
	if err != nil {
		return uuid.Nil, err
	}
	return newID, nil
}

func (r *postgresTrainingTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingType, error) {
	var tt model.TrainingType
	query := `SELECT id, name, description, duration_minutes FROM training_types WHERE id = $1`
	err := r.db.GetContext(ctx, &tt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tt, nil
}

func (r *postgresTrainingTypeRepository) List(ctx context.Context) ([]model.TrainingType, error) {
	var types []model.TrainingType
	err := r.db.SelectContext(ctx, &types, `SELECT id, name, description, duration_minutes FROM training_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []model.TrainingType{}
	}
	return types, nil
}
