package db

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
)

// Models lists every table in dependency order. Shared with the test
// database helper so tests migrate the same schema.
func Models() []interface{} {
	return []interface{}{
		&model.Household{},
		&model.User{},
		&model.Invitation{},
		&model.Store{},
		&model.Trip{},
		&model.Stop{},
		&model.BudgetSource{},
		&model.BudgetEntry{},
		&model.Purchase{},
		&model.Task{},
		&model.TaskStep{},
		&model.InventorySheet{},
		&model.InventoryItem{},
		&model.ShoppingList{},
		&model.ShoppingListItem{},
		&model.GoalCategory{},
		&model.Goal{},
		&model.Milestone{},
		&model.GoalHistory{},
		&model.Habit{},
		&model.HabitCompletion{},
		&model.Notebook{},
		&model.NotebookPage{},
		&model.Notification{},
		&model.NotificationPreferences{},
		&model.Tag{},
		&model.TaskTag{},
		&model.BudgetSourceTag{},
		&model.InventoryItemTag{},
		&model.GoalTag{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
