package audit

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("audit not found")

// Repository port for persisting and querying audits
type Repository interface {
	Save(ctx context.Context, a *Audit) error
	ListByUser(ctx context.Context, userID string) ([]*Audit, error)
	Get(ctx context.Context, id AuditID) (*Audit, error)
}

// ImageStore uploads screenshots and returns their public URL.
type ImageStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error)
}
