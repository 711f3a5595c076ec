package watchlist

import (
	"errors"
	"fmt"

	"watchlist/core/entry"
	"watchlist/core/logger"
	"watchlist/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the watchlist.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the watchlist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	entries := app.Group("/entries")
	entries.Get("/", h.HandleList)
	entries.Get("/search", h.HandleSearch)
	entries.Get("/:id", h.HandleGet)
	entries.Put("/:id", h.HandleUpsert)
	entries.Delete("/:id", h.HandleDelete)

	app.Get("/stats", h.HandleStats)
	app.Get("/export", h.HandleExport)
	app.Post("/import", h.HandleImport)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var (
		formatErr     *snapshot.FormatError
		versionErr    *snapshot.VersionError
		validationErr *entry.ValidationError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.As(err, &formatErr),
		errors.As(err, &versionErr),
		errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	code := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if code >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}
	return int64(id), nil
}

// HandleList lists entries.
// @Summary List Entries
// @Description List watchlist entries, newest first, optionally filtered by status.
// @Tags entries
// @Produce json
// @Param status query string false "Status filter (watching, completed, on_hold, dropped, planned)"
// @Success 200 {array} entry.Entry
// @Failure 400 {object} map[string]string "Invalid status"
// @Router /entries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), c.Query("status"))
	if err != nil {
		return h.fail(c, "List entries failed", err)
	}
	return c.JSON(entries)
}

// HandleSearch searches entries by title.
// @Summary Search Entries
// @Description Case-insensitive title search.
// @Tags entries
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} entry.Entry
// @Failure 400 {object} map[string]string "Empty query"
// @Router /entries/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	entries, err := h.service.Search(c.Context(), c.Query("q"))
	if err != nil {
		return h.fail(c, "Search failed", err)
	}
	return c.JSON(entries)
}

// HandleGet returns one entry.
// @Summary Get Entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} entry.Entry
// @Failure 404 {object} map[string]string "Not Found"
// @Router /entries/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, "Invalid id", err)
	}
	e, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, "Get entry failed", err)
	}
	return c.JSON(e)
}

// HandleUpsert creates or replaces an entry.
// @Summary Upsert Entry
// @Tags entries
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param entry body entry.Entry true "Entry"
// @Success 200 {object} entry.Entry
// @Failure 400 {object} map[string]string "Validation error"
// @Router /entries/{id} [put]
func (h *Handler) HandleUpsert(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, "Invalid id", err)
	}

	var e entry.Entry
	if err := c.BodyParser(&e); err != nil {
		return h.fail(c, "Invalid body", fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if e.ID == 0 {
		e.ID = id
	}
	if e.ID != id {
		return h.fail(c, "Invalid body", fmt.Errorf("%w: body id %d does not match path id %d", ErrInvalidInput, e.ID, id))
	}

	saved, err := h.service.Upsert(c.Context(), e)
	if err != nil {
		return h.fail(c, "Upsert entry failed", err)
	}
	return c.JSON(saved)
}

// HandleDelete removes an entry.
// @Summary Delete Entry
// @Tags entries
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /entries/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, "Invalid id", err)
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.fail(c, "Delete entry failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStats returns list statistics.
// @Summary Watchlist Stats
// @Tags entries
// @Produce json
// @Success 200 {object} store.Stats
// @Router /stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return h.fail(c, "Stats failed", err)
	}
	return c.JSON(stats)
}

// HandleExport downloads a snapshot.
// @Summary Export Snapshot
// @Description Serialize the entries within scope as a snapshot document.
// @Tags snapshot
// @Produce json
// @Param scope query string false "all or a status" default(all)
// @Success 200 {object} snapshot.Snapshot
// @Failure 400 {object} map[string]string "Invalid scope"
// @Router /export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	snap, data, err := h.service.Export(c.Context(), c.Query("scope"))
	if err != nil {
		return h.fail(c, "Export failed", err)
	}

	name := DefaultExportName(snap.Metadata.ExportScope, snap.CreatedAt)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Type("json")
	return c.Send(data)
}

// HandleImport reconciles an uploaded snapshot into the store.
// @Summary Import Snapshot
// @Description Merge a snapshot into the store. The body is the snapshot document.
// @Tags snapshot
// @Accept json
// @Produce json
// @Param strategy query string false "merge, replace or skip_existing" default(merge)
// @Param resolution query string false "keep_existing, use_imported or keep_newer" default(keep_existing)
// @Param scope query string false "all or a status" default(all)
// @Param dry_run query bool false "Only report what would happen"
// @Success 200 {object} reconcile.Outcome
// @Failure 400 {object} map[string]string "Malformed snapshot or invalid policy"
// @Failure 500 {object} map[string]string "Store failure"
// @Router /import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	opts := ImportOptions{
		Strategy:   c.Query("strategy"),
		Resolution: c.Query("resolution"),
		Scope:      c.Query("scope"),
		DryRun:     c.QueryBool("dry_run", false),
	}

	out, err := h.service.Import(c.Context(), c.Body(), opts)
	if err != nil {
		return h.fail(c, "Import failed", err)
	}
	return c.JSON(out)
}
