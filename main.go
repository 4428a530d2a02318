package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/common/logger"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/controllers"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/database"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/repository"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/routes"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/services"
)

func main() {
	cfg := LoadConfig()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer database.Close()

	redisClient := database.NewRedisClient(cfg.RedisURL)

	// Repositories
	productRepo := repository.NewProductRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	notificationRepo := repository.NewNotificationRepository(database.DB)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	// Services
	emailWebhook := services.NewEmailWebhook(cfg.EmailWebhookURL, cfg.EmailWebhookTimeout, logger.Log)
	notificationService := services.NewNotificationService(notificationRepo, emailWebhook, logger.Log)
	cartService := services.NewCartService(cartRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, notificationService, logger.Log)

	// Controllers
	productController := controllers.NewProductController(productRepo, logger.Log)
	cartController := controllers.NewCartController(cartService, productRepo, logger.Log)
	orderController := controllers.NewOrderController(orderService, logger.Log)
	notificationController := controllers.NewNotificationController(notificationService, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(router, productController, cartController, orderController, notificationController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Storefront backend is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server shutdown complete.")
}
