package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateGroupTrainingsTable, downCreateGroupTrainingsTable)
}

func upCreateGroupTrainingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE group_trainings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			training_type_id UUID NOT NULL REFERENCES training_types(id),
			location_id UUID NOT NULL REFERENCES locations(id),
			start_at TIMESTAMP WITH TIME ZONE NOT NULL,
			end_at TIMESTAMP WITH TIME ZONE NOT NULL,
			capacity INT NOT NULL CHECK (capacity > 0),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			CONSTRAINT check_interval CHECK (start_at < end_at)
		);

		CREATE INDEX idx_group_trainings_location_window ON group_trainings (location_id, start_at, end_at);

		CREATE TABLE group_training_trainers (
			training_id UUID NOT NULL REFERENCES group_trainings(id) ON DELETE CASCADE,
			trainer_id UUID NOT NULL REFERENCES users(id),
			position INT NOT NULL,
			PRIMARY KEY (training_id, trainer_id)
		);

		CREATE INDEX idx_group_training_trainers_trainer ON group_training_trainers (trainer_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateGroupTrainingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS group_training_trainers;
		DROP TABLE IF EXISTS group_trainings;
	`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
