package backup

import (
	"errors"
	"os"

	"watchlist/core/logger"
	"watchlist/core/snapshot"
	"watchlist/feature/watchlist"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for backups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backups")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleRun)
	group.Post("/:name/restore", h.HandleRestore)
}

// HandleList lists stored backups.
// @Summary List Backups
// @Tags backups
// @Produce json
// @Success 200 {array} storage.ObjectInfo
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	backups, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("List backups failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(backups)
}

// HandleRun writes a backup now.
// @Summary Run Backup
// @Tags backups
// @Produce json
// @Success 201 {object} RunResult
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	res, err := h.service.Run(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Backup run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleRestore imports a stored backup.
// @Summary Restore Backup
// @Tags backups
// @Produce json
// @Param name path string true "Backup file name"
// @Param strategy query string false "merge, replace or skip_existing" default(merge)
// @Param resolution query string false "keep_existing, use_imported or keep_newer" default(keep_existing)
// @Param scope query string false "all or a status" default(all)
// @Param dry_run query bool false "Only report what would happen"
// @Success 200 {object} reconcile.Outcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Backup not found"
// @Router /backups/{name}/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	opts := watchlist.ImportOptions{
		Strategy:   c.Query("strategy"),
		Resolution: c.Query("resolution"),
		Scope:      c.Query("scope"),
		DryRun:     c.QueryBool("dry_run", false),
	}

	out, err := h.service.Restore(c.Context(), c.Params("name"), opts)
	if err != nil {
		code := restoreStatus(err)
		l := logger.WithRayID(h.service.logger, c)
		if code >= fiber.StatusInternalServerError {
			l.Error("Restore failed", zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(out)
}

func restoreStatus(err error) int {
	var (
		formatErr  *snapshot.FormatError
		versionErr *snapshot.VersionError
	)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fiber.StatusNotFound
	case errors.Is(err, watchlist.ErrInvalidInput),
		errors.As(err, &formatErr),
		errors.As(err, &versionErr):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
