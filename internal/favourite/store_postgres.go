package favourite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/database"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// PostgresStore persists favourites; the composite primary key is the pair
// uniqueness invariant.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, f *Favourite) error {
	query := `INSERT INTO favourites (user_email, biodata_id, favourited_at) VALUES ($1, $2, $3)`
	_, err := s.db.ExecContext(ctx, query, f.UserEmail, f.BiodataID, f.FavouritedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("add favourite: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, userEmail string, biodataID int64) error {
	query := `DELETE FROM favourites WHERE lower(user_email) = lower($1) AND biodata_id = $2`
	res, err := s.db.ExecContext(ctx, query, userEmail, biodataID)
	if err != nil {
		return fmt.Errorf("remove favourite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favourite: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Exists(ctx context.Context, userEmail string, biodataID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favourites WHERE lower(user_email) = lower($1) AND biodata_id = $2)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userEmail, biodataID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favourite: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userEmail string) ([]*Favourite, error) {
	query := `
		SELECT user_email, biodata_id, favourited_at FROM favourites
		WHERE lower(user_email) = lower($1)
		ORDER BY biodata_id
	`
	rows, err := s.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	var out []*Favourite
	for rows.Next() {
		var f Favourite
		if err := rows.Scan(&f.UserEmail, &f.BiodataID, &f.FavouritedAt); err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByUser(ctx context.Context, userEmail string) (int64, error) {
	query := `SELECT count(*) FROM favourites WHERE lower(user_email) = lower($1)`
	var n int64
	if err := s.db.QueryRowContext(ctx, query, userEmail).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favourites: %w", err)
	}
	return n, nil
}
