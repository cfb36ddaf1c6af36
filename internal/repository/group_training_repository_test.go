package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
	repo "github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
)

func TestPostgresGroupTrainingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	id := uuid.New()
	trainerA := uuid.New()
	trainerB := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	created := time.Now()

	training := &model.GroupTraining{
		TrainingTypeID: uuid.New(),
		LocationID:     uuid.New(),
		StartAt:        start,
		EndAt:          end,
		Capacity:       20,
		TrainerIDs:     []uuid.UUID{trainerA, trainerB},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO group_trainings (training_type_id, location_id, start_at, end_at, capacity)`)).
		WithArgs(training.TrainingTypeID, training.LocationID, start, end, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, created))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO group_training_trainers (training_id, trainer_id, position) VALUES ($1, $2, $3)`)).
		WithArgs(id, trainerA, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO group_training_trainers (training_id, trainer_id, position) VALUES ($1, $2, $3)`)).
		WithArgs(id, trainerB, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := r.Create(context.Background(), training)
	require.NoError(t, err)
	require.Equal(t, id, saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, training_type_id, location_id, start_at, end_at, capacity, created_at FROM group_trainings WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	found, err := r.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_FindByID_SplitsRosters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	id := uuid.New()
	trainerID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, training_type_id, location_id, start_at, end_at, capacity, created_at FROM group_trainings WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "training_type_id", "location_id", "start_at", "end_at", "capacity", "created_at"}).
			AddRow(id, uuid.New(), uuid.New(), start, end, 2, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT trainer_id FROM group_training_trainers WHERE training_id = $1 ORDER BY position`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"trainer_id"}).AddRow(trainerID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, name, surname, avatar_url, list, position`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "surname", "avatar_url", "list", "position"}).
			AddRow(uuid.New(), "Anna", "Nowak", nil, "basic", 0).
			AddRow(uuid.New(), "Jan", "Kowalski", nil, "basic", 1).
			AddRow(uuid.New(), "Piotr", "Wójcik", nil, "reserve", 0))

	found, err := r.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{trainerID}, found.TrainerIDs)
	require.Len(t, found.BasicList, 2)
	require.Len(t, found.ReserveList, 1)
	require.Equal(t, "Anna", found.BasicList[0].Name)
	require.Equal(t, "Piotr", found.ReserveList[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	training := &model.GroupTraining{
		ID:             uuid.New(),
		TrainingTypeID: uuid.New(),
		LocationID:     uuid.New(),
		StartAt:        time.Now().Add(time.Hour),
		EndAt:          time.Now().Add(2 * time.Hour),
		Capacity:       10,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE group_trainings`)).
		WithArgs(training.ID, training.TrainingTypeID, training.LocationID, training.StartAt, training.EndAt, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = r.Update(context.Background(), training)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_ReplaceParticipants(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	id := uuid.New()
	basic := model.Participant{UserID: uuid.New(), Name: "Anna", Surname: "Nowak"}
	reserve := model.Participant{UserID: uuid.New(), Name: "Jan", Surname: "Kowalski"}
	training := &model.GroupTraining{
		ID:          id,
		BasicList:   []model.Participant{basic},
		ReserveList: []model.Participant{reserve},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM group_training_participants WHERE training_id = $1`)).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO group_training_participants (training_id, user_id, name, surname, avatar_url, list, position)`)).
		WithArgs(id, basic.UserID, "Anna", "Nowak", nil, "basic", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO group_training_participants (training_id, user_id, name, surname, avatar_url, list, position)`)).
		WithArgs(id, reserve.UserID, "Jan", "Kowalski", nil, "reserve", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = r.ReplaceParticipants(context.Background(), training)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_CountOverlappingByTrainer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	trainerID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN group_training_trainers tt ON tt.training_id = t.id`)).
		WithArgs(trainerID, start, end, nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := r.CountOverlappingByTrainer(context.Background(), trainerID, start, end, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_CountOverlappingByLocation_Excludes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	locationID := uuid.New()
	excludeID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE t.location_id = $1 AND t.start_at < $3 AND $2 < t.end_at`)).
		WithArgs(locationID, start, end, excludeID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := r.CountOverlappingByLocation(context.Background(), locationID, start, end, &excludeID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_List_WithFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	typeID := uuid.New()
	id := uuid.New()
	start := from.Add(10 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "training_type", "location_name", "trainer_names", "start_at", "end_at", "capacity", "enrolled"}).
		AddRow(id, "Yoga", "Studio A", "Anna Nowak", start, start.Add(time.Hour), 20, 12)
	mock.ExpectQuery(regexp.QuoteMeta(`AND t.end_at > $1 AND t.start_at < $2 AND t.training_type_id = $3`)).
		WithArgs(from, to, typeID).
		WillReturnRows(rows)

	trainings, err := r.List(context.Background(), repo.GroupTrainingFilter{From: &from, To: &to, TrainingTypeID: &typeID})
	require.NoError(t, err)
	require.Len(t, trainings, 1)
	require.Equal(t, "Yoga", trainings[0].TrainingType)
	require.Equal(t, 12, trainings[0].Enrolled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupTrainingRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresGroupTrainingRepository(sqlxDB)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM group_trainings WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	err = r.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
