package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/project"
	"haiku-server/internal/infrastructure/metrics"
	"haiku-server/internal/infrastructure/observability"
	"haiku-server/internal/utils/platformerrors"
)

// StateWaiter blocks until a project's state has changed since the last wait.
type StateWaiter interface {
	WaitAndClear(ctx context.Context, projectID uint) error
}

// DashboardHandler streams project state over a WebSocket. Each connection
// gets the current view on connect and a fresh view after every change.
type DashboardHandler struct {
	projects project.Service
	waiter   StateWaiter
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(projects project.Service, waiter StateWaiter, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		projects: projects,
		waiter:   waiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The dashboard is served to browsers on other origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With().Str("handler", "dashboard").Logger(),
	}
}

// Subscribe handles GET /projects/dashboard/:project_id
// @Summary Subscribe to project state
// @Description Upgrades to a WebSocket and pushes the full project view on every change
// @Tags Dashboard
// @Param project_id path int true "Project ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} responses.ErrorResponse
// @Router /projects/dashboard/{project_id} [get]
func (h *DashboardHandler) Subscribe(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.DashboardConnections.Inc()
	defer metrics.DashboardConnections.Dec()

	h.serve(c.Request.Context(), conn, uint(projectID))
}

func (h *DashboardHandler) serve(ctx context.Context, conn *websocket.Conn, projectID uint) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Read pump: the client never sends payloads we act on, but reading is
	// the only way to observe a disconnect.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log := h.log.With().Uint("project_id", projectID).Logger()
	log.Info().Msg("dashboard connected")
	defer log.Info().Msg("dashboard disconnected")

	if err := h.push(ctx, conn, projectID); err != nil {
		// Surface the failure to the client before closing.
		_ = conn.WriteJSON(gin.H{"error": err.Error()})
		if platformerrors.IsNotFound(err) {
			log.Info().Msg("dashboard subscription to unknown project")
		} else {
			log.Warn().Err(err).Msg("initial dashboard push failed")
		}
		return
	}

	for {
		if err := h.waiter.WaitAndClear(ctx, projectID); err != nil {
			return
		}
		if err := h.push(ctx, conn, projectID); err != nil {
			log.Warn().Err(err).Msg("dashboard push failed")
			return
		}
	}
}

func (h *DashboardHandler) push(ctx context.Context, conn *websocket.Conn, projectID uint) error {
	ctx, span := observability.StartPushSpan(ctx, projectID)
	defer span.End()

	view, err := h.projects.MaterializeView(ctx, projectID)
	if err != nil {
		observability.RecordError(span, err)
		metrics.DashboardPushesTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := conn.WriteJSON(view); err != nil {
		observability.RecordError(span, err)
		metrics.DashboardPushesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.DashboardPushesTotal.WithLabelValues("success").Inc()
	return nil
}
