package merge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"workbook-merger/core/logger"
	coremerge "workbook-merger/core/merge"
	"workbook-merger/core/workbook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// JobHeader carries the recorded history job id on merge responses.
const JobHeader = "X-Merge-Job"

// Handler handles HTTP requests for merging workbooks.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/merge")
	group.Post("/", h.HandleMerge)
	group.Post("/report", h.HandleReport)
	group.Get("/options", h.HandleOptions)
}

// reportResponse is the JSON body of the report endpoint.
type reportResponse struct {
	JobID   string            `json:"job_id,omitempty"`
	Headers []string          `json:"headers"`
	Report  *coremerge.Report `json:"report"`
}

// HandleMerge merges the uploaded workbooks and returns the result.
// @Summary Merge Workbooks
// @Description Merges the uploaded .xlsx workbooks into a single-sheet workbook and returns it for download.
// @Tags merge
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param files formData file true "Workbooks to merge (repeatable)"
// @Param options formData string false "Merge options as JSON"
// @Param report query string false "Set to json to get the report instead of the file"
// @Success 200 {file} binary "Merged workbook"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 422 {object} map[string]string "Unreadable workbook"
// @Router /merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	sources, opts, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, jobID, err := h.service.Merge(c.Context(), sources, opts)
	if err != nil {
		return h.mergeError(c, l, err)
	}

	if c.Query("report") == "json" {
		return c.JSON(reportResponse{
			JobID:   jobID,
			Headers: result.Headers,
			Report:  result.Report,
		})
	}

	name := fmt.Sprintf("reports_%s.xlsx", time.Now().Format("20060102150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	if jobID != "" {
		c.Set(JobHeader, jobID)
	}
	return c.Send(result.Output)
}

// HandleReport merges the uploaded workbooks and returns the report
// instead of the workbook.
// @Summary Merge Report
// @Description Runs the merge and returns the issue report and summary as JSON. The merged workbook is archived but not returned.
// @Tags merge
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Workbooks to merge (repeatable)"
// @Param options formData string false "Merge options as JSON"
// @Success 200 {object} merge.reportResponse "Merge report"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 422 {object} map[string]string "Unreadable workbook"
// @Router /merge/report [post]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	sources, opts, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, jobID, err := h.service.Merge(c.Context(), sources, opts)
	if err != nil {
		return h.mergeError(c, l, err)
	}

	return c.JSON(reportResponse{
		JobID:   jobID,
		Headers: result.Headers,
		Report:  result.Report,
	})
}

// HandleOptions returns the server-side default merge options.
// @Summary Default Merge Options
// @Description Returns the default merge options. The body can be edited and posted back as the options form field.
// @Tags merge
// @Produce json
// @Success 200 {object} merge.Options "Default options"
// @Router /merge/options [get]
func (h *Handler) HandleOptions(c *fiber.Ctx) error {
	return c.JSON(h.service.Defaults())
}

// parseRequest extracts the uploaded workbooks and the merge options
// from a multipart request. Options start from the server defaults and
// are overridden by the optional "options" JSON form field.
func (h *Handler) parseRequest(c *fiber.Ctx) ([]coremerge.Source, coremerge.Options, error) {
	opts := h.service.Defaults()

	form, err := c.MultipartForm()
	if err != nil {
		return nil, opts, fmt.Errorf("expected multipart form: %w", err)
	}

	if raw := form.Value["options"]; len(raw) > 0 && raw[0] != "" {
		if err := json.Unmarshal([]byte(raw[0]), &opts); err != nil {
			return nil, opts, fmt.Errorf("parse merge options: %w", err)
		}
		if err := opts.Validate(); err != nil {
			return nil, opts, err
		}
	}

	files := form.File["files"]
	if len(files) == 0 {
		return nil, opts, errors.New("no workbooks uploaded")
	}

	sources := make([]coremerge.Source, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, opts, fmt.Errorf("open upload %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, opts, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}
		sources = append(sources, coremerge.Source{Name: fh.Filename, Data: data})
	}
	return sources, opts, nil
}

// mergeError maps engine failures to HTTP statuses: unreadable inputs
// are the client's problem, anything else is ours.
func (h *Handler) mergeError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var decodeErr *workbook.DecodeError
	if errors.As(err, &decodeErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, context.Canceled) {
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Merge failed", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
