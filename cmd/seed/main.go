package main

import (
	"time"

	"github.com/lifeboard/lifeboard-backend/config"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/db"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Seeds a demo household with one shopping trip so a fresh install has
// something to look at: one trip dated today, one stop, two purchases,
// each backed by a budget entry, plus the linked calendar task. Every
// step logs and continues on failure; partial seed data is harmless.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(logger.Config{Level: "debug", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err, nil)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err, nil)
	}

	gormDB := db.GetDB()
	userRepo := repository.NewUserRepository(gormDB)
	householdRepo := repository.NewHouseholdRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	authService := service.NewAuthService(userRepo, householdRepo, nil,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	receiptService := service.NewReceiptService(gormDB, tripRepo, storeRepo, taskRepo)

	user, _, err := authService.Register(
		cfg.Auth.BypassEmail, "demo-password", "Demo User", "Demo Household")
	if err != nil {
		if existing, lookupErr := userRepo.FindByEmail(cfg.Auth.BypassEmail); lookupErr == nil {
			logger.Info("Demo user already exists, reusing", map[string]interface{}{
				"email": existing.Email,
			})
			user = existing
		} else {
			logger.Error("Failed to create demo user", err, nil)
			return
		}
	}

	trip, err := receiptService.CreateTrip(user.HouseholdID, user.ID, service.CreateTripInput{
		Date:   time.Now(),
		Driver: user.Name,
		Stops: []service.StopInput{
			{
				StoreName: "Walmart Supercenter",
				Street:    "406 S Walton Blvd",
				City:      "Bentonville",
				State:     "AR",
			},
		},
	})
	if err != nil {
		logger.Error("Failed to seed demo trip", err, nil)
		return
	}

	purchases := []service.PurchaseInput{
		{Brand: "Great Value", Name: "Whole Milk, 1 Gallon", Count: 1, Unit: "gal", Price: decimal.NewFromFloat(3.48), Taxed: false},
		{Brand: "Bounty", Name: "Paper Towels, 2 Rolls", Count: 1, Unit: "pack", Price: decimal.NewFromFloat(4.28), Taxed: true},
	}
	stopID := trip.Stops[0].ID
	for _, input := range purchases {
		if _, err := receiptService.CreatePurchase(user.HouseholdID, user.ID, stopID, input); err != nil {
			logger.Error("Failed to seed demo purchase", err, map[string]interface{}{
				"name": input.Name,
			})
		}
	}

	logger.Info("Seed complete", map[string]interface{}{
		"household_id": user.HouseholdID,
		"trip_id":      trip.ID,
		"email":        user.Email,
	})
}
