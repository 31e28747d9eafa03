package integrity

import (
	"context"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/storage"
	"mastodon-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultReportTTL is how long a combined report is served from memory.
const DefaultReportTTL = 30 * time.Second

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	logger  *zap.Logger
	reports *reportCache
}

// NewService creates a new integrity service. folders are the bucket folders the
// archive writes under.
func NewService(client storage.Client, bucket string, folders []string, db *gorm.DB, logger *zap.Logger, ttl time.Duration) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		db:      db,
		logger:  logger,
		reports: newReportCache(ttl),
	}
}

// CheckStructure returns the archive folders missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	defer s.reports.invalidate()
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the database with the graph models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(ctx, s.db, graph.Models())
}

// FixSchema migrates the graph tables.
func (s *Service) FixSchema(ctx context.Context) error {
	defer s.reports.invalidate()
	return graph.Migrate(ctx, s.db)
}

// Report is the combined result of every check. A failing check is reported in
// place instead of failing the whole report.
type Report struct {
	Structure map[string]any `json:"structure"`
	Schema    any            `json:"schema"`
	Built     time.Time      `json:"built"`
}

// Report returns the combined report, building it at most once per TTL.
func (s *Service) Report(ctx context.Context, refresh bool) (*Report, error) {
	if refresh {
		s.reports.invalidate()
	}
	return s.reports.get(func() (*Report, error) {
		return s.buildReport(ctx), nil
	})
}

func (s *Service) buildReport(ctx context.Context) *Report {
	report := &Report{Built: time.Now().UTC()}

	if missing, err := s.CheckStructure(ctx); err != nil {
		report.Structure = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report.Structure = map[string]any{"status": "ok", "missing": missing}
	}

	if schema, err := s.CheckSchema(ctx); err != nil {
		report.Schema = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report.Schema = schema
	}

	s.logger.Debug("Built integrity report")
	return report
}
