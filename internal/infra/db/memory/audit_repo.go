package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/critique/internal/domain/audit"
)

// AuditRepository is an in-memory audit.Repository.
type AuditRepository struct {
	mu     sync.RWMutex
	audits map[domain.AuditID]domain.Audit
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{audits: make(map[domain.AuditID]domain.Audit)}
}

func (r *AuditRepository) Save(ctx context.Context, a *domain.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits[a.ID] = *a
	return nil
}

// ListByUser returns the user's audits newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Audit{}
	for _, a := range r.audits {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AuditRepository) Get(ctx context.Context, id domain.AuditID) (*domain.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.audits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}
