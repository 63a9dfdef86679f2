package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/bryanwahyu/critique/internal/domain/audit"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Save inserts an audit record
func (r *AuditRepository) Save(ctx context.Context, a *domain.Audit) error {
	const q = `
INSERT INTO audits
  (id, user_id, project_name, thumbnail_url, analysis_data, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	analysis := string(a.Analysis)
	if analysis == "" {
		analysis = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, a.ID, a.UserID, a.ProjectName, a.ThumbnailURL, analysis, createdAt)
	return err
}

// ListByUser returns the user's audits ordered by created_at desc
func (r *AuditRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Audit, error) {
	const q = `
SELECT id, user_id, project_name, thumbnail_url, analysis_data, created_at
FROM audits
WHERE user_id=$1
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Audit{}
	for rows.Next() {
		var a domain.Audit
		var analysis []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProjectName, &a.ThumbnailURL, &analysis, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Analysis = analysis
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *AuditRepository) Get(ctx context.Context, id domain.AuditID) (*domain.Audit, error) {
	const q = `
SELECT id, user_id, project_name, thumbnail_url, analysis_data, created_at
FROM audits
WHERE id=$1;`
	var a domain.Audit
	var analysis []byte
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.UserID, &a.ProjectName, &a.ThumbnailURL, &analysis, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Analysis = analysis
	return &a, nil
}
