package history

import (
	"errors"

	"workbook-merger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the merge history.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:id/download", h.HandleDownload)
}

// HandleList returns recent merge jobs.
// @Summary List Merge History
// @Description Returns the most recent merge jobs, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum number of jobs (default 50)"
// @Success 200 {array} history.MergeJob "Merge jobs"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	jobs, err := h.service.Recent(c.Context(), c.QueryInt("limit"))
	if errors.Is(err, ErrDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to list merge history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(jobs)
}

// HandleDownload streams an archived merge output.
// @Summary Download Archived Merge
// @Description Streams the output workbook of a past merge job.
// @Tags history
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Merge job ID"
// @Success 200 {file} binary "Merged workbook"
// @Failure 404 {object} map[string]string "Unknown job"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /history/{id}/download [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := c.Params("id")

	obj, err := h.service.Download(c.Context(), id)
	if errors.Is(err, ErrDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to fetch archived merge", zap.String("job", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`.xlsx"`)
	return c.SendStream(obj)
}
