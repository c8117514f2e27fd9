package main

import (
	"fmt"
	"os"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/broadcast"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/internal/server/config"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	repo := repository.NewMemoryRepo()
	events := broadcast.NewBroadcaster()

	coordinator := auction.NewCoordinator(repo, events, auction.Config{
		AntiSnipeWindow: cfg.AntiSnipeWindow,
		ExtensionMargin: cfg.ExtensionMargin,
		SubmitTimeout:   cfg.SubmitTimeout,
		SweepInterval:   cfg.SweepInterval,
	})

	prepopulateAuctions(coordinator)

	coordinator.Start()
	defer coordinator.Stop()

	router := server.SetupRouter(coordinator)

	fmt.Printf("Starting auction engine on %s...\n", cfg.ServerAddress)
	if err := router.Run(cfg.ServerAddress); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateAuctions schedules sample auctions against demo listings
func prepopulateAuctions(c *auction.Coordinator) {
	now := time.Now().UTC()
	tiers := []model.IncrementTier{
		{From: decimal.Zero, Increment: decimal.NewFromInt(50)},
		{From: decimal.NewFromInt(10000), Increment: decimal.NewFromInt(250)},
	}

	samples := []auction.ScheduleParams{
		{ListingRef: "listing-sedan-2019", StartingPrice: decimal.NewFromInt(1000), IncrementTiers: tiers, StartTime: now, EndTime: now.Add(24 * time.Hour)},
		{ListingRef: "listing-suv-2021", StartingPrice: decimal.NewFromInt(8000), ReservePrice: decimal.NewFromInt(20000), IncrementTiers: tiers, StartTime: now, EndTime: now.Add(48 * time.Hour)},
		{ListingRef: "listing-coupe-2017", StartingPrice: decimal.NewFromInt(3500), IncrementTiers: tiers, StartTime: now.Add(time.Hour), EndTime: now.Add(72 * time.Hour)},
	}

	for _, p := range samples {
		if _, err := c.ScheduleAuction(p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to schedule sample auction: %v\n", err)
		}
	}
	c.OpenDueAuctions()
}
