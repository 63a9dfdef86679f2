package share

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/critique/internal/application"
	domain "github.com/bryanwahyu/critique/internal/domain/share"
)

// Service stores report snapshots under random ids. Reports are never
// updated or deleted, and reads are not restricted to the creator.
type Service struct {
	Store domain.Store
	Clock application.Clock
}

func NewService(store domain.Store, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{Store: store, Clock: clock}
}

// Put stamps createdAt on a copy of the report and stores it.
func (s *Service) Put(ctx context.Context, report domain.Report) (string, error) {
	id := uuid.NewString()

	record := make(domain.Report, len(report)+1)
	maps.Copy(record, report)
	record[domain.CreatedAtField] = s.Clock.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if err := s.Store.Set(ctx, domain.Key(id), data); err != nil {
		return "", fmt.Errorf("store report %s: %w", id, err)
	}
	return id, nil
}

// Get returns the stored report or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (domain.Report, error) {
	data, err := s.Store.Get(ctx, domain.Key(id))
	if err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return report, nil
}
