package feeds

import (
	"errors"

	"untis-notifier/core/logger"
	"untis-notifier/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the polled feeds.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the feed routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/check/:verb", h.HandleCheck)
	app.Get("/status", h.HandleStatus)
	app.Get("/snapshots/:kind", h.HandleGetSnapshot)
}

// HandleCheck triggers one reconciliation cycle without waiting for it.
// @Summary Trigger a feed check
// @Description Starts a reconciliation cycle for one feed in the background. The result is only visible in the logs and /status.
// @Tags feeds
// @Produce json
// @Param verb path string true "Feed verb (timetable, absences, homework, exams)"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Unknown verb"
// @Router /check/{verb} [post]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	verb := c.Params("verb")
	l := logger.WithRayID(h.service.logger, c)

	kind, err := h.service.Check(verb)
	if err != nil {
		l.Warn("Rejected feed check", zap.String("verb", verb), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "accepted",
		"kind":   string(kind),
	})
}

// HandleStatus reports every feed with its last cycle.
// @Summary Feed status
// @Description Lists the feeds, whether they are polled, and the summary of their last cycle.
// @Tags feeds
// @Produce json
// @Success 200 {array} scheduler.FeedStatus "Feed status"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleGetSnapshot returns the stored snapshot of one feed.
// @Summary Get stored snapshot
// @Description Returns the stored baseline of one feed, including the Last-Cached-Date marker for the timetable.
// @Tags feeds
// @Produce json
// @Param kind path string true "Feed kind or verb"
// @Success 200 {object} reconcile.Snapshot "Snapshot"
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 404 {object} map[string]string "No snapshot stored"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshots/{kind} [get]
func (h *Handler) HandleGetSnapshot(c *fiber.Ctx) error {
	name := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Snapshot(c.Context(), name)
	switch {
	case errors.Is(err, ErrUnknownKind):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrSnapshotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Snapshot lookup failed", zap.String("kind", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(snap)
}
