package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"resortbooking/internal/config"
	"resortbooking/internal/database"
	"resortbooking/internal/modules/events"
	"resortbooking/internal/modules/reconcile"
	"resortbooking/internal/pkg/clock"
)

// Runs both reconciliation sweeps once and exits. Useful for cron-style
// deployments and for operators forcing a pass outside the schedule.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	clk := clock.NewSystem()
	ctx := context.Background()

	moderation := reconcile.NewModerationSweep(db, clk, cfg.ContractSignGrace, events.NopPublisher{})
	if err := moderation.Run(ctx); err != nil {
		log.Fatalf("moderation sweep failed: %v", err)
	}

	tierSweep := reconcile.NewTierSweep(db, clk)
	if err := tierSweep.Run(ctx); err != nil {
		log.Fatalf("tier sweep failed: %v", err)
	}
}
