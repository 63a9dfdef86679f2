package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

// DefaultTimeout bounds each provider attempt.
const DefaultTimeout = 25 * time.Second

// Service walks the candidate chain in order and returns the first result
// the parser accepts. It never fails: when every candidate fails, or none is
// configured, it returns critique.Simulated().
type Service struct {
	Candidates []critique.Candidate
	Parser     critique.ResponseParser
	Timeout    time.Duration
	Logger     *slog.Logger

	// OnAttempt, when set, is called after every candidate call with the
	// candidate name and its error (nil on success).
	OnAttempt func(model string, err error)
}

func NewService(parser critique.ResponseParser, logger *slog.Logger, candidates ...critique.Candidate) *Service {
	return &Service{
		Candidates: candidates,
		Parser:     parser,
		Timeout:    DefaultTimeout,
		Logger:     logger,
	}
}

// Analyze runs the chain for one screenshot. Candidates are tried one at a
// time; a candidate is only called after the previous one has failed.
func (s *Service) Analyze(ctx context.Context, image, userContext string) critique.Result {
	img := critique.ParseDataURL(image)

	for _, c := range s.Candidates {
		if ctx.Err() != nil {
			break
		}
		res, err := s.attempt(ctx, c, img, userContext)
		if s.OnAttempt != nil {
			s.OnAttempt(c.Name(), err)
		}
		if err != nil {
			s.logger().Warn("candidate failed", "model", c.Name(), "error", err)
			continue
		}
		s.logger().Info("analysis complete", "model", c.Name(), "annotations", len(res.Annotations))
		return res
	}

	s.logger().Info("no candidate succeeded, returning simulated result", "candidates", len(s.Candidates))
	return critique.Simulated()
}

func (s *Service) attempt(ctx context.Context, c critique.Candidate, img critique.Image, userContext string) (critique.Result, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := c.Complete(ctx, img, userContext)
	if err != nil {
		return critique.Result{}, err
	}
	obj, err := s.Parser.Parse(text)
	if err != nil {
		return critique.Result{}, err
	}
	return critique.FromModel(obj, c.Name()), nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
