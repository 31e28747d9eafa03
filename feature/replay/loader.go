package replay

import (
	"mastodon-sync/core/archive"
	"mastodon-sync/core/ingest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the replay feature. It is disabled when a is nil.
func NewFeature(a *archive.Archive, router *ingest.Router, logger *zap.Logger) *Feature {
	svc := NewService(a, router, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: a != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "replay"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
