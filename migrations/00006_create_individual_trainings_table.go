package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateIndividualTrainingsTable, downCreateIndividualTrainingsTable)
}

func upCreateIndividualTrainingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE individual_trainings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			client_id UUID NOT NULL REFERENCES users(id),
			location_id UUID REFERENCES locations(id),
			start_at TIMESTAMP WITH TIME ZONE NOT NULL,
			end_at TIMESTAMP WITH TIME ZONE NOT NULL,
			status TEXT NOT NULL DEFAULT 'requested',
			remarks TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			CONSTRAINT check_interval CHECK (start_at < end_at),
			CONSTRAINT check_status CHECK (status IN ('requested', 'accepted', 'rejected')),
			CONSTRAINT check_location_iff_accepted CHECK ((status = 'accepted') = (location_id IS NOT NULL))
		);

		CREATE INDEX idx_individual_trainings_client ON individual_trainings (client_id);
		CREATE INDEX idx_individual_trainings_location_window ON individual_trainings (location_id, start_at, end_at);

		CREATE TABLE individual_training_trainers (
			training_id UUID NOT NULL REFERENCES individual_trainings(id) ON DELETE CASCADE,
			trainer_id UUID NOT NULL REFERENCES users(id),
			PRIMARY KEY (training_id, trainer_id)
		);

		CREATE INDEX idx_individual_training_trainers_trainer ON individual_training_trainers (trainer_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateIndividualTrainingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS individual_training_trainers;
		DROP TABLE IF EXISTS individual_trainings;
	`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
