package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paulr25/bp-tracker/internal/models"
)

func TestReadingRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	takenAt := time.Date(2024, 2, 5, 14, 30, 0, 0, time.Local)
	mock.ExpectQuery(`INSERT INTO readings \(user_id, systolic, diastolic, taken_at\)`).
		WithArgs(1, 120, 80, takenAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "systolic", "diastolic", "taken_at"}).
			AddRow(42, 1, 120, 80, takenAt))

	repo := NewReadingRepo(db)
	reading, err := repo.Create(context.Background(), 1, 120, 80, takenAt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if reading.ID != 42 || reading.Systolic != 120 || reading.Diastolic != 80 {
		t.Errorf("unexpected reading: %+v", reading)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_ListForUser_Descending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	t1 := time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local)
	t2 := time.Date(2024, 2, 2, 8, 0, 0, 0, time.Local)
	t3 := time.Date(2024, 2, 3, 8, 0, 0, 0, time.Local)

	mock.ExpectQuery(`ORDER BY taken_at DESC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "systolic", "diastolic", "taken_at"}).
			AddRow(3, 1, 130, 85, t3).
			AddRow(2, 1, 125, 82, t2).
			AddRow(1, 1, 120, 80, t1))

	repo := NewReadingRepo(db)
	readings, err := repo.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}
	if !readings[0].TakenAt.Equal(t3) || !readings[2].TakenAt.Equal(t1) {
		t.Errorf("unexpected order: %+v", readings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_ListForUserChronological(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	t1 := time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local)
	t2 := time.Date(2024, 2, 2, 8, 0, 0, 0, time.Local)

	mock.ExpectQuery(`ORDER BY taken_at ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "systolic", "diastolic", "taken_at"}).
			AddRow(1, 1, 120, 80, t1).
			AddRow(2, 1, 125, 82, t2))

	repo := NewReadingRepo(db)
	readings, err := repo.ListForUserChronological(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUserChronological: %v", err)
	}
	if len(readings) != 2 || !readings[0].TakenAt.Equal(t1) {
		t.Errorf("unexpected order: %+v", readings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_ListForUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`ORDER BY taken_at DESC`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "systolic", "diastolic", "taken_at"}))

	repo := NewReadingRepo(db)
	readings, err := repo.ListForUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("expected empty list, got %+v", readings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id FROM readings WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM readings WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewReadingRepo(db)
	if err := repo.Delete(context.Background(), 5, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id FROM readings WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	repo := NewReadingRepo(db)
	err = repo.Delete(context.Background(), 999, 1)
	if !errors.Is(err, ErrReadingNotFound) {
		t.Errorf("Delete: got %v, want ErrReadingNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_Delete_NotOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Reading 5 belongs to user 2; user 1 asks for the delete. No DELETE
	// statement must be issued.
	mock.ExpectQuery(`SELECT user_id FROM readings WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))

	repo := NewReadingRepo(db)
	err = repo.Delete(context.Background(), 5, 1)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("Delete: got %v, want ErrNotOwner", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_BulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	t1 := time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local)
	t2 := time.Date(2024, 2, 2, 8, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO readings \(user_id, systolic, diastolic, taken_at\)`)
	prep.ExpectExec().WithArgs(1, 120, 80, t1).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(1, 125, 82, t2).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := NewReadingRepo(db)
	err = repo.BulkInsert(context.Background(), []models.Reading{
		{UserID: 1, Systolic: 120, Diastolic: 80, TakenAt: t1},
		{UserID: 1, Systolic: 125, Diastolic: 82, TakenAt: t2},
	})
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_BulkInsert_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// No expectations: an empty batch must not touch the database.
	repo := NewReadingRepo(db)
	if err := repo.BulkInsert(context.Background(), nil); err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
