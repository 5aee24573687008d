package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mobelhaus/storefront/internal/interfaces/http/dto"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and readiness probes
type SystemHandler struct {
	BaseHandler
	appName  string
	database Pinger
	cache    Pinger
}

// NewSystemHandler creates a new SystemHandler. The cache pinger may be
// nil when caching is disabled.
func NewSystemHandler(appName string, database, cache Pinger) *SystemHandler {
	return &SystemHandler{
		appName:  appName,
		database: database,
		cache:    cache,
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
	Time   string `json:"time"`
}

// ReadyResponse reports dependency reachability
type ReadyResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health is a liveness probe; it succeeds as long as the process serves
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status: "ok",
		App:    h.appName,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready is a readiness probe; it checks the database and, when
// configured, the cache
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{}
	ready := true

	if err := h.database.Ping(ctx); err != nil {
		services["database"] = "unreachable"
		ready = false
	} else {
		services["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			services["cache"] = "unreachable"
			ready = false
		} else {
			services["cache"] = "ok"
		}
	}

	status := "ok"
	code := http.StatusOK
	if !ready {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, dto.NewSuccessResponse(ReadyResponse{Status: status, Services: services}))
}
