package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/middleware"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/services"
)

// OrderController exposes checkout plus the customer and admin order views.
type OrderController struct {
	orderService *services.OrderService
	logger       *zap.Logger
}

func NewOrderController(orderService *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// Checkout submits the caller's cart as a Pending Approval order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.SubmitOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// GetOrders returns the caller's orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := oc.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID returns one of the caller's orders.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := oc.orderService.GetOrderByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetAllOrders returns every order for the admin console.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// DecideOrder approves or rejects a pending order. A degraded fan-out is
// reported as a warning on a successful response, never as a failure.
func (oc *OrderController) DecideOrder(c *gin.Context) {
	var req struct {
		Decision     string `json:"decision" binding:"required"`
		AdminComment string `json:"admin_comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := oc.orderService.DecideOrder(c.Request.Context(), c.Param("id"), req.Decision, req.AdminComment)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"order": result.Order}
	if result.Degraded {
		resp["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}
