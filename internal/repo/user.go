package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/paulr25/bp-tracker/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================

// Create inserts a new user with the given bcrypt password hash.
// Returns ErrDuplicateUsername when the username is already taken
// (case-sensitive; enforced by the unique index on users.username).
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&user.ID, &user.Username, &user.PasswordHash)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username (exact match)
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username (case-insensitive)
// ==========================

// GetByUsernameFold looks a user up ignoring case. Used by the bulk importer,
// where the username comes from an operator rather than a login form.
// Because uniqueness is case-sensitive, "Paul" and "paul" can both exist;
// in that case the lookup refuses to pick one and returns ErrAmbiguousUsername.
func (r *UserRepo) GetByUsernameFold(ctx context.Context, username string) (*models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
			return nil, err
		}
		matches = append(matches, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		u := matches[0]
		return &u, nil
	default:
		return nil, ErrAmbiguousUsername
	}
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ==========================
// Count Users
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
