package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/database"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// PostgresStore persists users in PostgreSQL. The email UNIQUE constraint is
// the authoritative guard against duplicate sign-ups.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, name, photo_url, role, subscription_type, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.SubscriptionType, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PhotoURL, u.Role, u.SubscriptionType, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context, search string) ([]*User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetRole(ctx context.Context, id uuid.UUID, role Role) error {
	query := `UPDATE users SET role = $2, updated_at = now() WHERE id = $1 AND role <> $2`
	return s.execExpectingRow(ctx, query, "set role", id, role)
}

func (s *PostgresStore) SetSubscription(ctx context.Context, id uuid.UUID, sub Subscription) error {
	query := `UPDATE users SET subscription_type = $2, updated_at = now() WHERE id = $1 AND subscription_type <> $2`
	return s.execExpectingRow(ctx, query, "set subscription", id, sub)
}

func (s *PostgresStore) SetSubscriptionByEmail(ctx context.Context, email string, sub Subscription) error {
	query := `UPDATE users SET subscription_type = $2, updated_at = now() WHERE lower(email) = lower($1)`
	return s.execExpectingRow(ctx, query, "set subscription by email", email, sub)
}

func (s *PostgresStore) execExpectingRow(ctx context.Context, query, op string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountBySubscription(ctx context.Context, sub Subscription) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM users WHERE subscription_type = $1`
	if err := s.db.QueryRowContext(ctx, query, sub).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by subscription: %w", err)
	}
	return n, nil
}
