package biodata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/database"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// PostgresStore persists biodata in PostgreSQL. The sequential public id is
// allocated inside the INSERT statement itself and guarded by a UNIQUE
// constraint, so two concurrent creations can never observe the same max.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const biodataColumns = `id, biodata_id, contact_email, biodata_type, status, name, age, occupation, permanent_division, mobile_number, attrs, created_at, updated_at`

func scanBiodata(row interface{ Scan(...any) error }) (*Biodata, error) {
	var b Biodata
	var attrs []byte
	err := row.Scan(&b.ID, &b.BiodataID, &b.ContactEmail, &b.Type, &b.Status, &b.Name,
		&b.Age, &b.Occupation, &b.PermanentDivision, &b.MobileNumber, &attrs,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &b.Attrs); err != nil {
			return nil, fmt.Errorf("decode attrs: %w", err)
		}
	}
	return &b, nil
}

func (s *PostgresStore) Create(ctx context.Context, b *Biodata) error {
	attrs, err := json.Marshal(b.Attrs)
	if err != nil {
		return fmt.Errorf("encode attrs: %w", err)
	}
	if b.Attrs == nil {
		attrs = []byte("{}")
	}
	query := `
		INSERT INTO biodata (` + biodataColumns + `)
		SELECT $1, COALESCE(MAX(biodata_id), 0) + 1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		FROM biodata
		RETURNING biodata_id
	`
	// One retry covers the rare case of two allocations racing on the
	// biodata_id constraint; an owner-email conflict is final.
	for attempt := 0; attempt < 2; attempt++ {
		err := s.db.QueryRowContext(ctx, query,
			b.ID, b.ContactEmail, b.Type, b.Status, b.Name, b.Age,
			b.Occupation, b.PermanentDivision, b.MobileNumber, attrs,
			b.CreatedAt, b.UpdatedAt,
		).Scan(&b.BiodataID)
		if err == nil {
			return nil
		}
		if database.IsUniqueViolation(err) {
			if strings.Contains(database.ConstraintName(err), "contact_email") {
				return sentinel.ErrConflict
			}
			continue
		}
		return fmt.Errorf("create biodata: %w", err)
	}
	return fmt.Errorf("create biodata: %w", sentinel.ErrConflict)
}

func (s *PostgresStore) FindByStorageID(ctx context.Context, id uuid.UUID) (*Biodata, error) {
	query := `SELECT ` + biodataColumns + ` FROM biodata WHERE id = $1`
	return s.findOne(ctx, query, id)
}

func (s *PostgresStore) FindByBiodataID(ctx context.Context, biodataID int64) (*Biodata, error) {
	query := `SELECT ` + biodataColumns + ` FROM biodata WHERE biodata_id = $1`
	return s.findOne(ctx, query, biodataID)
}

func (s *PostgresStore) FindByOwner(ctx context.Context, contactEmail string) (*Biodata, error) {
	query := `SELECT ` + biodataColumns + ` FROM biodata WHERE lower(contact_email) = lower($1)`
	return s.findOne(ctx, query, contactEmail)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*Biodata, error) {
	b, err := scanBiodata(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find biodata: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) Update(ctx context.Context, b *Biodata) error {
	attrs, err := json.Marshal(b.Attrs)
	if err != nil {
		return fmt.Errorf("encode attrs: %w", err)
	}
	if b.Attrs == nil {
		attrs = []byte("{}")
	}
	query := `
		UPDATE biodata
		SET biodata_type = $2, name = $3, age = $4, occupation = $5,
		    permanent_division = $6, mobile_number = $7, attrs = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		b.ID, b.Type, b.Name, b.Age, b.Occupation, b.PermanentDivision,
		b.MobileNumber, attrs, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update biodata: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update biodata: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByType(ctx context.Context, t Type, exclude uuid.UUID, limit int) ([]*Biodata, error) {
	query := `
		SELECT ` + biodataColumns + ` FROM biodata
		WHERE biodata_type = $1 AND id <> $2
		ORDER BY biodata_id
		LIMIT $3
	`
	return s.list(ctx, query, t, exclude, limit)
}

func (s *PostgresStore) ListPremium(ctx context.Context, ageAscending bool, limit int) ([]*Biodata, error) {
	direction := "ASC"
	if !ageAscending {
		direction = "DESC"
	}
	query := `
		SELECT ` + biodataColumns + ` FROM biodata
		WHERE status = 'premium'
		ORDER BY age ` + direction + `
		LIMIT $1
	`
	return s.list(ctx, query, limit)
}

func (s *PostgresStore) ListByBiodataIDs(ctx context.Context, ids []int64) ([]*Biodata, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + biodataColumns + ` FROM biodata
		WHERE biodata_id = ANY($1)
		ORDER BY biodata_id
	`
	return s.list(ctx, query, pq.Array(ids))
}

func (s *PostgresStore) Search(ctx context.Context, f SearchFilter) (*SearchResult, error) {
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 9
	}

	where := `
		($1 = '' OR name ILIKE '%' || $1 || '%' OR occupation ILIKE '%' || $1 || '%' OR permanent_division ILIKE '%' || $1 || '%')
		AND ($2 = 0 OR $3 = 0 OR age BETWEEN $2 AND $3)
		AND ($4 = '' OR biodata_type = $4)
		AND ($5 = '' OR permanent_division = $5)
	`
	args := []any{f.Search, f.MinAge, f.MaxAge, string(f.Type), f.Division}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM biodata WHERE `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count biodata search: %w", err)
	}

	query := `
		SELECT ` + biodataColumns + ` FROM biodata
		WHERE ` + where + `
		ORDER BY biodata_id
		OFFSET $6 LIMIT $7
	`
	items, err := s.list(ctx, query, append(args, (page-1)*limit, limit)...)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Items:       items,
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *PostgresStore) ListPendingPremium(ctx context.Context) ([]*Biodata, error) {
	query := `
		SELECT ` + biodataColumns + ` FROM biodata
		WHERE status = 'pending'
		ORDER BY created_at DESC
	`
	return s.list(ctx, query)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Biodata, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list biodata: %w", err)
	}
	defer rows.Close()

	var out []*Biodata
	for rows.Next() {
		b, err := scanBiodata(rows)
		if err != nil {
			return nil, fmt.Errorf("scan biodata: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetStatusByStorageID(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE biodata SET status = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set biodata status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set biodata status: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ApprovePremiumByBiodataID(ctx context.Context, biodataID int64) error {
	query := `
		UPDATE biodata SET status = 'premium', updated_at = now()
		WHERE biodata_id = $1 AND status = 'pending'
	`
	res, err := s.db.ExecContext(ctx, query, biodataID)
	if err != nil {
		return fmt.Errorf("approve premium: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve premium: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM biodata`)
}

func (s *PostgresStore) CountByType(ctx context.Context, t Type) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM biodata WHERE biodata_type = $1`, t)
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM biodata WHERE status = $1`, status)
}

func (s *PostgresStore) CountByTypeAndStatus(ctx context.Context, t Type, status Status) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM biodata WHERE biodata_type = $1 AND status = $2`, t, status)
}

func (s *PostgresStore) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count biodata: %w", err)
	}
	return n, nil
}
