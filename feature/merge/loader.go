package merge

import (
	coremerge "workbook-merger/core/merge"
	"workbook-merger/feature/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the merge feature. The history service is
// optional; without it merges simply go unrecorded.
func NewFeature(logger *zap.Logger, defaults coremerge.Options, hist *history.Service) *Feature {
	svc := NewService(logger, defaults, hist)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "merge"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
