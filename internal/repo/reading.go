package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/paulr25/bp-tracker/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ReadingRepo struct {
	DB *sql.DB
}

func NewReadingRepo(db *sql.DB) *ReadingRepo {
	return &ReadingRepo{DB: db}
}

// ========================
// CREATE READING
// ========================

func (r *ReadingRepo) Create(ctx context.Context, userID, systolic, diastolic int, takenAt time.Time) (models.Reading, error) {
	var reading models.Reading
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO readings (user_id, systolic, diastolic, taken_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, systolic, diastolic, taken_at`,
		userID, systolic, diastolic, takenAt,
	).Scan(
		&reading.ID,
		&reading.UserID,
		&reading.Systolic,
		&reading.Diastolic,
		&reading.TakenAt,
	)
	return reading, err
}

// ========================
// LIST FOR USER (most recent first)
// ========================

func (r *ReadingRepo) ListForUser(ctx context.Context, userID int) ([]models.Reading, error) {
	return r.list(ctx, userID, "DESC")
}

// ========================
// LIST FOR USER (chronological, for charting)
// ========================

func (r *ReadingRepo) ListForUserChronological(ctx context.Context, userID int) ([]models.Reading, error) {
	return r.list(ctx, userID, "ASC")
}

func (r *ReadingRepo) list(ctx context.Context, userID int, order string) ([]models.Reading, error) {
	query := `SELECT id, user_id, systolic, diastolic, taken_at
		 FROM readings
		 WHERE user_id = $1
		 ORDER BY taken_at ` + order
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		if err := rows.Scan(&reading.ID, &reading.UserID, &reading.Systolic, &reading.Diastolic, &reading.TakenAt); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

// ========================
// DELETE (ownership-checked)
// ========================

// Delete removes a reading permanently. The owner check happens before the
// delete so a mismatch returns ErrNotOwner without touching the row.
func (r *ReadingRepo) Delete(ctx context.Context, readingID, requestingUserID int) error {
	var ownerID int
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM readings WHERE id = $1`, readingID,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReadingNotFound
	}
	if err != nil {
		return err
	}

	if ownerID != requestingUserID {
		return ErrNotOwner
	}

	_, err = r.DB.ExecContext(ctx, `DELETE FROM readings WHERE id = $1`, readingID)
	return err
}

// ========================
// BULK INSERT (single transaction)
// ========================

// BulkInsert writes all readings in one transaction; either every row lands
// or none do. Used by the importer after row-level parsing has finished.
func (r *ReadingRepo) BulkInsert(ctx context.Context, readings []models.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO readings (user_id, systolic, diastolic, taken_at) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.ExecContext(ctx, reading.UserID, reading.Systolic, reading.Diastolic, reading.TakenAt); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
