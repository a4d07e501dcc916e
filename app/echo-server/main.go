package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"myRoomStore/app/echo-server/router"
	cartService "myRoomStore/business/cart"
	ordersService "myRoomStore/business/orders"
	productService "myRoomStore/business/product"
	userService "myRoomStore/business/user"
	wishlistService "myRoomStore/business/wishlist"
	"myRoomStore/internal/middleware"
	"myRoomStore/internal/repository/notification"
	psqlRepo "myRoomStore/internal/repository/postgres"
	"myRoomStore/internal/repository/redisrepo"
	"myRoomStore/internal/rest"
	"myRoomStore/pkg/config"
	"myRoomStore/pkg/database"
	redisdb "myRoomStore/pkg/database/redis"
	"myRoomStore/pkg/logger"
	"myRoomStore/pkg/metrics"
	"myRoomStore/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting RoomStore", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Revocation cache is optional; the durable denylist lives in Postgres.
	var revocationCache *redisrepo.RevocationCache
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, running without revocation cache", err)
		} else {
			revocationCache = redisrepo.NewRevocationCache(redisClient)
			defer redisdb.CloseRedisClient(redisClient)
		}
	}

	var mailer ordersService.NotificationRepository
	if cfg.Mailjet.MailjetBaseUrl != "" {
		mailer = notification.NewMailjetRepository(notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		})
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	tokenRepo := psqlRepo.NewTokenRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	// Init service
	users := userService.NewUserService(userRepo, tokenRepo, revocationCache, validate)
	products := productService.NewProductService(productRepo)
	wishlists := wishlistService.NewWishlistService(wishlistRepo, productRepo)
	carts := cartService.NewCartService(cartRepo, productRepo)
	orders := ordersService.NewOrdersService(ordersRepo, userRepo, mailer)

	// Init handler
	userHandler := rest.NewUserHandler(users)
	productHandler := rest.NewProductHandler(products)
	wishlistHandler := rest.NewWishlistHandler(wishlists)
	cartHandler := rest.NewCartHandler(carts)
	ordersHandler := rest.NewOrdersHandler(orders)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware()
	staffOnly := middleware.StaffOnly()

	// Setup routes
	router.SetupAuthRoutes(e, userHandler, authRequired)
	router.SetupUserRoutes(e, userHandler, authRequired, staffOnly)
	router.SetupProductRoutes(e, productHandler, authRequired, staffOnly)
	router.SetupWishlistRoutes(e, wishlistHandler, authRequired)
	router.SetupCartRoutes(e, cartHandler, authRequired)
	router.SetupOrdersRoutes(e, ordersHandler, authRequired)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
