package audits

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/critique/internal/application"
	domain "github.com/bryanwahyu/critique/internal/domain/audit"
	"github.com/bryanwahyu/critique/internal/domain/critique"
)

// Service saves and reads a user's audits. Images is optional; without it
// screenshots are not uploaded and thumbnails stay empty.
type Service struct {
	Repo   domain.Repository
	Images domain.ImageStore
	Clock  application.Clock
	Logger *slog.Logger
}

// SaveCommand is the input of Save.
type SaveCommand struct {
	UserID      string
	ProjectName string
	Screenshot  string
	Analysis    json.RawMessage
}

func (s *Service) Save(ctx context.Context, cmd SaveCommand) (*domain.Audit, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	name := strings.TrimSpace(cmd.ProjectName)
	if name == "" {
		name = domain.DefaultProjectName
	}
	analysis := cmd.Analysis
	if len(analysis) == 0 {
		analysis = json.RawMessage("{}")
	}

	a := &domain.Audit{
		ID:           domain.AuditID(uuid.NewString()),
		UserID:       cmd.UserID,
		ProjectName:  name,
		ThumbnailURL: s.thumbnail(ctx, cmd.UserID, cmd.Screenshot),
		Analysis:     analysis,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("save audit: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*domain.Audit, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns domain.ErrNotFound when the audit does not exist or belongs
// to another user.
func (s *Service) Get(ctx context.Context, userID string, id domain.AuditID) (*domain.Audit, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// thumbnail uploads an inline screenshot. Upload problems leave the audit
// without a thumbnail rather than failing the save.
func (s *Service) thumbnail(ctx context.Context, userID, screenshot string) string {
	if screenshot == "" {
		return ""
	}
	if !critique.IsDataURL(screenshot) {
		return screenshot
	}
	if s.Images == nil {
		return ""
	}

	img := critique.ParseDataURL(screenshot)
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		s.logger().Warn("screenshot is not valid base64", "user", userID, "error", err)
		return ""
	}
	key := fmt.Sprintf("%s/%s.%s", userID, uuid.NewString(), img.Extension())
	url, err := s.Images.UploadBytes(ctx, key, img.MediaType, data)
	if err != nil {
		s.logger().Error("screenshot upload failed", "user", userID, "key", key, "error", err)
		return ""
	}
	return url
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
