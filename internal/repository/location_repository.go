package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
)

type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
}

type postgresLocationRepository struct {
	db *sqlx.DB
}

func NewPostgresLocationRepository(db *sqlx.DB) LocationRepository {
	return &postgresLocationRepository{db: db}
}

func (r *postgresLocationRepository) Create(ctx context.Context, loc *model.Location) (uuid.UUID, error) {
	query := `INSERT INTO locations (name, description) VALUES ($1, $2) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, loc.Name, loc.Description).Scan(&newID)
	if err != nil {
		return uuid.Nil, err
	}
	return newID, nil
}

func (r *postgresLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var loc model.Location
	query := `SELECT id, name, description FROM locations WHERE id = $1`
	err := r.db.GetContext(ctx, &loc, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *postgresLocationRepository) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.SelectContext(ctx, &locations, `SELECT id, name, description FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []model.Location{}
	}
	return locations, nil
}
