package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"resortbooking/internal/config"
	"resortbooking/internal/database"
	"resortbooking/internal/middleware"
	adminmod "resortbooking/internal/modules/admin"
	"resortbooking/internal/modules/auth"
	"resortbooking/internal/modules/booking"
	"resortbooking/internal/modules/catalog"
	"resortbooking/internal/modules/events"
	"resortbooking/internal/modules/reconcile"
	"resortbooking/internal/pkg/clock"
	jwtsvc "resortbooking/internal/pkg/jwt"
	"resortbooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	clk := clock.NewSystem()
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := events.NewHub()
	defer hub.Close()

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	tierRepo := repository.NewTierRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	contractRepo := repository.NewContractRepository(db)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomTypeRepo, roomRepo, serviceRepo, tierRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(db, bookingRepo, clk, hub)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := adminmod.NewService(db, bookingRepo, contractRepo, clk, hub)
	adminHandler := adminmod.NewHandler(adminService)

	wsHandler := events.NewWSHandler(hub, j)

	scheduler := reconcile.NewScheduler(
		reconcile.NewModerationSweep(db, clk, cfg.ContractSignGrace, hub),
		reconcile.NewTierSweep(db, clk),
		cfg.ModerationInterval,
		cfg.TierInterval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	r := gin.Default()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		v1.GET("/ws/events", wsHandler.HandleWebSocket)

		// authenticated customers
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			adminHandler.RegisterCustomerRoutes(protected)
		}

		// admin surface
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterAdminRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()
	log.Printf("listening on %s", cfg.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
