package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateGroupTrainingParticipantsTable, downCreateGroupTrainingParticipantsTable)
}

func upCreateGroupTrainingParticipantsTable(ctx context.Context, tx *sql.Tx) error {
	// name/surname/avatar_url are snapshots taken at enrollment time, not
	// foreign keys into the live user directory
	query := `
		CREATE TABLE group_training_participants (
			training_id UUID NOT NULL REFERENCES group_trainings(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			avatar_url TEXT,
			list TEXT NOT NULL CHECK (list IN ('basic', 'reserve')),
			position INT NOT NULL,
			PRIMARY KEY (training_id, user_id)
		);

		CREATE INDEX idx_group_training_participants_user ON group_training_participants (user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateGroupTrainingParticipantsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS group_training_participants;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
