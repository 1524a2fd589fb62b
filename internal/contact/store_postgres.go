package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/database"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// PostgresStore persists contact requests in PostgreSQL. The composite
// UNIQUE constraint on the requester triple rejects duplicates at insert
// time, closing the check-then-insert race.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `id, requester_email, requested_biodata_id, requester_name, status, price, requested_at`

func scanRequest(row interface{ Scan(...any) error }) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.RequesterEmail, &r.RequestedBiodataID, &r.RequesterName,
		&r.Status, &r.Price, &r.RequestedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) Create(ctx context.Context, r *Request) error {
	query := `
		INSERT INTO contact_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.RequesterEmail, r.RequestedBiodataID, r.RequesterName,
		r.Status, r.Price, r.RequestedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create contact request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM contact_requests WHERE id = $1`
	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contact request: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListByRequester(ctx context.Context, email string) ([]*Request, error) {
	query := `
		SELECT ` + requestColumns + ` FROM contact_requests
		WHERE lower(requester_email) = lower($1)
		ORDER BY requested_at
	`
	return s.list(ctx, query, email)
}

func (s *PostgresStore) Approve(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE contact_requests SET status = 'approved' WHERE id = $1 AND status = 'pending'`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("approve contact request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve contact request: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID, requesterEmail string) error {
	query := `DELETE FROM contact_requests WHERE id = $1 AND lower(requester_email) = lower($2)`
	res, err := s.db.ExecContext(ctx, query, id, requesterEmail)
	if err != nil {
		return fmt.Errorf("delete contact request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact request: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]*Request, error) {
	query := `
		SELECT ` + requestColumns + ` FROM contact_requests
		WHERE status = 'pending'
		ORDER BY requested_at DESC
	`
	return s.list(ctx, query)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}
	defer rows.Close()

	var out []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM contact_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contact requests: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM contact_requests WHERE status = $1`
	if err := s.db.QueryRowContext(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contact requests by status: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) SumApprovedPrice(ctx context.Context) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(price), 0) FROM contact_requests WHERE status = 'approved'`
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum approved contact requests: %w", err)
	}
	return sum, nil
}
