package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/mobelhaus/storefront/internal/application/checkout"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/interfaces/http/dto"
)

// CheckoutHandler handles order placement and order management
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
	requireAuth     gin.HandlerFunc
	optionalAuth    gin.HandlerFunc
	requireAdmin    gin.HandlerFunc
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService, requireAuth, optionalAuth, requireAdmin gin.HandlerFunc) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		requireAuth:     requireAuth,
		optionalAuth:    optionalAuth,
		requireAdmin:    requireAdmin,
	}
}

// RegisterRoutes registers all checkout and order routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.optionalAuth, h.PlaceOrder)
	rg.GET("/orders/track/:number", h.Track)

	orders := rg.Group("/orders", h.requireAuth)
	orders.GET("", h.ListOwn)
	orders.GET("/:id", h.GetOwn)

	admin := rg.Group("/admin/orders", h.requireAuth, h.requireAdmin)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.POST("/:id/complete", h.Complete)
	admin.POST("/:id/ship", h.Ship)
	admin.POST("/:id/cancel", h.Cancel)
}

// PlaceOrder submits a checkout. Each line carries the price the buyer
// saw; signed-in callers get their cart cleared after the order persists.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), getOptionalUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Track returns an order by its number. Order numbers are unguessable,
// so guests can check on their orders without an account.
func (h *CheckoutHandler) Track(c *gin.Context) {
	result, err := h.checkoutService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListOwn returns the authenticated user's order history
func (h *CheckoutHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	result, err := h.checkoutService.ListByOwner(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetOwn returns one of the authenticated user's orders
func (h *CheckoutHandler) GetOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.GetOwnOrder(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns all orders for back-office review
func (h *CheckoutHandler) List(c *gin.Context) {
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

	result, err := h.checkoutService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single order for back-office review
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Complete marks a pending order as paid
func (h *CheckoutHandler) Complete(c *gin.Context) {
	h.applyTransition(c, h.checkoutService.Complete)
}

// Ship marks a completed order as shipped
func (h *CheckoutHandler) Ship(c *gin.Context) {
	h.applyTransition(c, h.checkoutService.Ship)
}

// Cancel cancels an order that has not shipped yet
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.checkoutService.Cancel)
}

func (h *CheckoutHandler) applyTransition(c *gin.Context, transition func(ctx context.Context, id uuid.UUID) (*checkoutapp.OrderResponse, error)) {
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
