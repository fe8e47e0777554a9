package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safebite/backend/config"
	"github.com/safebite/backend/internal/api"
	"github.com/safebite/backend/internal/database"
	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/router"
	"github.com/safebite/backend/internal/server"
	"github.com/safebite/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Optional integrations: the API runs without them, the corresponding
	// endpoints report the feature as unavailable.
	var classifier service.Classifier
	if svc, err := service.NewClassifierService(cfg); err != nil {
		log.Printf("Classifier disabled: %v", err)
	} else {
		classifier = svc
	}

	var images service.PhotoUploader
	if s3Config, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Photo upload disabled: %v", err)
	} else {
		images = service.NewImageService(s3Config)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	menuService := service.NewMenuService(db)
	cartService := service.NewCartService(service.NewRedisCartStore(redisClient))
	events := service.NewRedisOrderEvents(redisClient)
	orderService := service.NewOrderService(db, cartService, events)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     120,
		KeyPrefix: "ratelimit",
	})

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService),
		Menu:    api.NewMenuHandler(menuService, profileService),
		Cart:    api.NewCartHandler(cartService, menuService),
		Order:   api.NewOrderHandler(orderService, events),
		Item:    api.NewItemHandler(menuService, classifier, images),
		Admin:   api.NewAdminHandler(authService),

		TokenValidator: authService,
		RateLimiter:    rateLimiter,
	})

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
