package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTrainingTypesTable, downCreateTrainingTypesTable)
}

func upCreateTrainingTypesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE training_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			duration_minutes INT NOT NULL DEFAULT 60
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTrainingTypesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS training_types;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
