package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/config"
	"github.com/yeremiapane/restaurant-tables/database"
	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/middlewares"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/router"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info")
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to register validators: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedisClient(cfg)
		if err != nil {
			utils.ErrorLogger.Printf("Redis unavailable, keeping revoked tokens in memory: %v", err)
		} else {
			defer rdb.Close()
			tokens.UseRevocationStore(utils.NewRedisRevocations(rdb, "restaurant:revoked:"))
			utils.InfoLogger.Printf("Token revocations stored in Redis at %s", cfg.RedisAddr)
		}
	}

	hub := kds.NewHub()
	var events services.Broadcaster = hub
	if cfg.AMQPURL != "" {
		publisher, err := services.NewQueuePublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, floor events stay local: %v", err)
		} else {
			defer publisher.Close()
			events = services.Fanout{hub, publisher}
			utils.InfoLogger.Printf("Publishing floor events to queue %s", cfg.AMQPQueue)
		}
	}

	// one restaurant per running service; its state ends with the process
	journal := services.NewJournal(db)
	floor := services.NewFloorService(models.NewRestaurant(), journal, events)
	seeded := database.SeedTables(context.Background(), floor, cfg.SeedTables)
	utils.InfoLogger.Printf("Floor ready with %d tables", seeded)

	monitor := services.NewChangeMonitor(db, hub)
	monitor.Interval = cfg.MonitorInterval
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(router.Deps{
		DB:          db,
		Floor:       floor,
		Journal:     journal,
		Hub:         hub,
		Tokens:      tokens,
		CORSOrigin:  cfg.CORSOrigin,
		RateLimiter: middlewares.NewRateLimiter(cfg.RateLimit, time.Second),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
}
