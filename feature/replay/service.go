package replay

import (
	"context"

	"mastodon-sync/core/archive"
	"mastodon-sync/core/ingest"

	"go.uber.org/zap"
)

// Failure is an envelope that could not be replayed.
type Failure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Report summarizes a replay run.
type Report struct {
	Domain    string    `json:"domain"`
	Envelopes int       `json:"envelopes"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Skipped   int       `json:"skipped"`
	Failed    []Failure `json:"failed,omitempty"`
}

// Service replays archived envelopes.
type Service struct {
	archive *archive.Archive
	router  *ingest.Router
	logger  *zap.Logger
}

// NewService creates a new replay service.
func NewService(a *archive.Archive, router *ingest.Router, logger *zap.Logger) *Service {
	return &Service{archive: a, router: router, logger: logger}
}

// List returns the archived keys of domain in observation order.
func (s *Service) List(ctx context.Context, domain string) ([]string, error) {
	return s.archive.Keys(ctx, domain)
}

// Replay dispatches every archived envelope of domain. A failing envelope is
// reported and the run continues; only listing errors abort it.
func (s *Service) Replay(ctx context.Context, domain string) (*Report, error) {
	keys, err := s.archive.Keys(ctx, domain)
	if err != nil {
		return nil, err
	}

	report := &Report{Domain: domain}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := s.replayOne(ctx, key)
		if err != nil {
			s.logger.Warn("Replay failed", zap.String("key", key), zap.Error(err))
			report.Failed = append(report.Failed, Failure{Key: key, Error: err.Error()})
			continue
		}

		report.Envelopes++
		report.Created += res.Created
		report.Updated += res.Updated
		report.Skipped += res.Skipped
	}

	s.logger.Info("Replay finished",
		zap.String("domain", domain),
		zap.Int("envelopes", report.Envelopes),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

func (s *Service) replayOne(ctx context.Context, key string) (ingest.Result, error) {
	env, err := s.archive.Get(ctx, key)
	if err != nil {
		return ingest.Result{}, err
	}
	if err := env.Validate(); err != nil {
		return ingest.Result{}, err
	}
	return s.router.Dispatch(ctx, env)
}
