package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/middleware"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/repository"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/services"
)

// CartController exposes the cart manager over HTTP. The catalog is read
// here so cart lines capture their product snapshot at add time.
type CartController struct {
	cartService *services.CartService
	products    repository.ProductRepository
	logger      *zap.Logger
}

func NewCartController(cartService *services.CartService, products repository.ProductRepository, logger *zap.Logger) *CartController {
	return &CartController{
		cartService: cartService,
		products:    products,
		logger:      logger,
	}
}

// GetCart returns the caller's cart with derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := cc.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

// AddItem adds a product to the caller's cart.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := cc.products.FindByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		cc.logger.Error("failed to fetch product for cart add",
			zap.String("product_id", req.ProductID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	cart, err := cc.cartService.AddItem(c.Request.Context(), userID, product, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

// UpdateItem sets the quantity of a cart line; quantity below one removes it.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Quantity int  `json:"quantity"`
		MaxStock *int `json:"max_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, err := cc.cartService.SetQuantity(c.Request.Context(), userID, c.Param("product_id"), req.Quantity, req.MaxStock)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

// RemoveItem removes a cart line; an absent line is a successful no-op.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := cc.cartService.RemoveItem(c.Request.Context(), userID, c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

// ClearCart removes every line from the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := cc.cartService.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
