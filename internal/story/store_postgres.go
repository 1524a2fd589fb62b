package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// PostgresStore persists success stories in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const storyColumns = `id, self_biodata_id, partner_biodata_id, couple_image, story, marriage_date, status, created_at`

func scanStory(row interface{ Scan(...any) error }) (*Story, error) {
	var st Story
	err := row.Scan(&st.ID, &st.SelfBiodataID, &st.PartnerBiodataID, &st.CoupleImage,
		&st.StoryText, &st.MarriageDate, &st.Status, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PostgresStore) Create(ctx context.Context, st *Story) error {
	query := `INSERT INTO success_stories (` + storyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		st.ID, st.SelfBiodataID, st.PartnerBiodataID, st.CoupleImage,
		st.StoryText, st.MarriageDate, st.Status, st.CreatedAt)
	if err != nil {
		return fmt.Errorf("create success story: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM success_stories WHERE id = $1`
	st, err := scanStory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find success story: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) FindBySelfBiodataID(ctx context.Context, biodataID int64) (*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM success_stories WHERE self_biodata_id = $1 LIMIT 1`
	st, err := scanStory(s.db.QueryRowContext(ctx, query, biodataID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find success story by biodata: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) Approve(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE success_stories SET status = 'approved' WHERE id = $1 AND status = 'pending'`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("approve success story: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve success story: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListApproved(ctx context.Context, limit int) ([]*Story, error) {
	query := `
		SELECT ` + storyColumns + ` FROM success_stories
		WHERE status = 'approved'
		ORDER BY created_at DESC
		LIMIT $1
	`
	return s.list(ctx, query, limit)
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]*Story, error) {
	query := `
		SELECT ` + storyColumns + ` FROM success_stories
		WHERE status = 'pending'
		ORDER BY created_at DESC
	`
	return s.list(ctx, query)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Story, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list success stories: %w", err)
	}
	defer rows.Close()

	var out []*Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan success story: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM success_stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count success stories: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM success_stories WHERE status = $1`
	if err := s.db.QueryRowContext(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count success stories by status: %w", err)
	}
	return n, nil
}
