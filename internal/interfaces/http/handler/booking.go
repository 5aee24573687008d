package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookingapp "github.com/mobelhaus/storefront/internal/application/booking"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/interfaces/http/dto"
)

// BookingHandler handles design consultation bookings
type BookingHandler struct {
	BaseHandler
	consultationService *bookingapp.ConsultationService
	requireAuth         gin.HandlerFunc
	optionalAuth        gin.HandlerFunc
	requireAdmin        gin.HandlerFunc
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(consultationService *bookingapp.ConsultationService, requireAuth, optionalAuth, requireAdmin gin.HandlerFunc) *BookingHandler {
	return &BookingHandler{
		consultationService: consultationService,
		requireAuth:         requireAuth,
		optionalAuth:        optionalAuth,
		requireAdmin:        requireAdmin,
	}
}

// RegisterRoutes registers all consultation routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/consultations", h.optionalAuth, h.Request)
	rg.GET("/consultations", h.requireAuth, h.ListOwn)

	admin := rg.Group("/admin/consultations", h.requireAuth, h.requireAdmin)
	admin.GET("", h.List)
	admin.POST("/:id/confirm", h.Confirm)
	admin.POST("/:id/decline", h.Decline)
	admin.POST("/:id/complete", h.Complete)
}

// Request books a design consultation. Signed-in users get the booking
// attached to their account; guests book by contact details alone.
func (h *BookingHandler) Request(c *gin.Context) {
	var req bookingapp.RequestConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.consultationService.Request(c.Request.Context(), getOptionalUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListOwn returns the authenticated user's consultations
func (h *BookingHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.consultationService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns all consultations for back-office review
func (h *BookingHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.consultationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Confirm confirms a requested consultation
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, h.consultationService.Confirm)
}

// Decline declines a consultation
func (h *BookingHandler) Decline(c *gin.Context) {
	h.applyTransition(c, h.consultationService.Decline)
}

// Complete marks a confirmed consultation as held
func (h *BookingHandler) Complete(c *gin.Context) {
	h.applyTransition(c, h.consultationService.Complete)
}

func (h *BookingHandler) applyTransition(c *gin.Context, transition func(ctx context.Context, id uuid.UUID) (*bookingapp.ConsultationResponse, error)) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := transition(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
