package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/controllers"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/middleware"
)

// Register wires every controller into the gin engine.
func Register(
	r *gin.Engine,
	products *controllers.ProductController,
	cart *controllers.CartController,
	orders *controllers.OrderController,
	notifications *controllers.NotificationController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "storefront-backend"})
	})

	// Catalog: public reads, admin mutations
	productRoutes := r.Group("/products")
	productRoutes.GET("/", products.ListProducts)
	productRoutes.GET("/:id", products.GetProduct)

	productAdmin := r.Group("/products", middleware.AuthMiddleware(), middleware.AdminOnly())
	productAdmin.POST("/", products.CreateProduct)
	productAdmin.PUT("/:id", products.UpdateProduct)
	productAdmin.DELETE("/:id", products.DeleteProduct)

	// Cart and checkout
	cartRoutes := r.Group("/cart", middleware.AuthMiddleware())
	cartRoutes.GET("/", cart.GetCart)
	cartRoutes.POST("/items", cart.AddItem)
	cartRoutes.PUT("/items/:product_id", cart.UpdateItem)
	cartRoutes.DELETE("/items/:product_id", cart.RemoveItem)
	cartRoutes.DELETE("/", cart.ClearCart)

	r.POST("/checkout", middleware.AuthMiddleware(), orders.Checkout)

	// Customer order view
	orderRoutes := r.Group("/orders", middleware.AuthMiddleware())
	orderRoutes.GET("/", orders.GetOrders)
	orderRoutes.GET("/:id", orders.GetOrderByID)

	// Admin console
	adminRoutes := r.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())
	adminRoutes.GET("/orders", orders.GetAllOrders)
	adminRoutes.POST("/orders/:id/decision", orders.DecideOrder)

	// Notifications
	notificationRoutes := r.Group("/notifications", middleware.AuthMiddleware())
	notificationRoutes.GET("/", notifications.List)
	notificationRoutes.POST("/:id/read", notifications.MarkRead)
	notificationRoutes.POST("/read-all", notifications.MarkAllRead)
	notificationRoutes.GET("/stream", notifications.Stream)
}
