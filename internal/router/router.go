package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/config"
	"github.com/lifeboard/lifeboard-backend/internal/app/controller"
	"github.com/lifeboard/lifeboard-backend/internal/metrics"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth         *controller.AuthController
	Household    *controller.HouseholdController
	Task         *controller.TaskController
	Receipt      *controller.ReceiptController
	Budget       *controller.BudgetController
	Inventory    *controller.InventoryController
	Shopping     *controller.ShoppingController
	Goal         *controller.GoalController
	Habit        *controller.HabitController
	Notebook     *controller.NotebookController
	Notification *controller.NotificationController
	Tag          *controller.TagController
	Upload       *controller.UploadController
	Calendar     *controller.CalendarController
}

func Setup(cfg *config.Config, auth *middleware.AuthMiddleware, ctrls Controllers) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.LoggingMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/auth/register", ctrls.Auth.Register)
	v1.POST("/auth/login", ctrls.Auth.Login)
	v1.POST("/auth/refresh", ctrls.Auth.Refresh)
	v1.GET("/calendar/feed/:token", ctrls.Calendar.Feed)

	// Everything below needs a valid access token
	authed := v1.Group("")
	authed.Use(auth.Authenticate())

	authed.POST("/auth/logout", ctrls.Auth.Logout)
	authed.GET("/auth/me", ctrls.Auth.Me)
	authed.PATCH("/auth/me", ctrls.Auth.UpdateProfile)
	authed.GET("/auth/feed-token", ctrls.Auth.GetFeedToken)
	authed.POST("/auth/feed-token/rotate", ctrls.Auth.RotateFeedToken)

	household := authed.Group("/household")
	{
		household.GET("", ctrls.Household.Get)
		household.PATCH("", auth.RequireOwner(), ctrls.Household.Rename)
		household.GET("/members", ctrls.Household.Members)
		household.POST("/invitations", auth.RequireOwner(), ctrls.Household.Invite)
		household.GET("/invitations", ctrls.Household.ListInvitations)
		household.GET("/invitations/pending", ctrls.Household.Pending)
		household.POST("/invitations/:code/accept", ctrls.Household.Accept)
		household.POST("/invitations/:code/decline", ctrls.Household.Decline)
		household.POST("/leave", ctrls.Household.Leave)
	}

	tasks := authed.Group("/tasks")
	{
		tasks.POST("", ctrls.Task.Create)
		tasks.GET("", ctrls.Task.List)
		tasks.GET("/:id", ctrls.Task.Get)
		tasks.PATCH("/:id", ctrls.Task.Update)
		tasks.DELETE("/:id", ctrls.Task.Delete)
		tasks.POST("/:id/steps", ctrls.Task.AddStep)
		tasks.PUT("/:id/steps/reorder", ctrls.Task.ReorderSteps)
		tasks.PATCH("/:id/steps/:stepID", ctrls.Task.UpdateStep)
		tasks.DELETE("/:id/steps/:stepID", ctrls.Task.DeleteStep)
		tasks.PUT("/:id/tags", ctrls.Task.SetTags)
	}

	receipts := authed.Group("/receipts")
	{
		receipts.POST("/trips", ctrls.Receipt.CreateTrip)
		receipts.GET("/trips", ctrls.Receipt.ListTrips)
		receipts.GET("/trips/:id", ctrls.Receipt.GetTrip)
		receipts.PATCH("/trips/:id", ctrls.Receipt.UpdateTrip)
		receipts.DELETE("/trips/:id", ctrls.Receipt.DeleteTrip)
		receipts.POST("/trips/:id/stops", ctrls.Receipt.AddStop)
		receipts.DELETE("/stops/:id", ctrls.Receipt.DeleteStop)
		receipts.POST("/stops/:id/purchases", ctrls.Receipt.CreatePurchase)
		receipts.PATCH("/purchases/:id", ctrls.Receipt.UpdatePurchase)
		receipts.DELETE("/purchases/:id", ctrls.Receipt.DeletePurchase)
		receipts.POST("/purchases/:id/photo", ctrls.Upload.AttachPhoto)
		receipts.GET("/purchases/:id/photo", ctrls.Upload.PhotoURL)
		receipts.GET("/stores", ctrls.Receipt.ListStores)
		receipts.GET("/brands", ctrls.Receipt.Brands)
		receipts.GET("/units", ctrls.Receipt.Units)
		receipts.GET("/drivers", ctrls.Receipt.Drivers)
	}

	budget := authed.Group("/budget")
	{
		budget.POST("/sources", ctrls.Budget.CreateSource)
		budget.GET("/sources", ctrls.Budget.ListSources)
		budget.PATCH("/sources/:id", ctrls.Budget.UpdateSource)
		budget.DELETE("/sources/:id", ctrls.Budget.DeleteSource)
		budget.PUT("/sources/:id/tags", ctrls.Budget.SetSourceTags)
		budget.POST("/entries", ctrls.Budget.CreateEntry)
		budget.GET("/entries", ctrls.Budget.ListEntries)
		budget.PATCH("/entries/:id", ctrls.Budget.UpdateEntry)
		budget.DELETE("/entries/:id", ctrls.Budget.DeleteEntry)
		budget.GET("/summary", ctrls.Budget.Summary)
		budget.GET("/export/csv", ctrls.Budget.ExportCSV)
		budget.GET("/export/xlsx", ctrls.Budget.ExportXLSX)
	}

	inventory := authed.Group("/inventory")
	{
		inventory.POST("/sheets", ctrls.Inventory.CreateSheet)
		inventory.GET("/sheets", ctrls.Inventory.ListSheets)
		inventory.GET("/sheets/:id", ctrls.Inventory.GetSheet)
		inventory.PATCH("/sheets/:id", ctrls.Inventory.RenameSheet)
		inventory.DELETE("/sheets/:id", ctrls.Inventory.DeleteSheet)
		inventory.POST("/sheets/:id/items", ctrls.Inventory.CreateItem)
		inventory.GET("/items", ctrls.Inventory.ListItems)
		inventory.GET("/items/low-stock", ctrls.Inventory.LowStock)
		inventory.PATCH("/items/:id", ctrls.Inventory.UpdateItem)
		inventory.POST("/items/:id/adjust", ctrls.Inventory.AdjustItem)
		inventory.DELETE("/items/:id", ctrls.Inventory.DeleteItem)
		inventory.PUT("/items/:id/tags", ctrls.Inventory.SetItemTags)
	}

	shopping := authed.Group("/shopping/lists")
	{
		shopping.POST("", ctrls.Shopping.CreateList)
		shopping.GET("", ctrls.Shopping.ListLists)
		shopping.GET("/:id", ctrls.Shopping.GetList)
		shopping.PATCH("/:id", ctrls.Shopping.RenameList)
		shopping.DELETE("/:id", ctrls.Shopping.DeleteList)
		shopping.POST("/:id/items", ctrls.Shopping.AddItem)
		shopping.PATCH("/:id/items/:itemID", ctrls.Shopping.UpdateItem)
		shopping.DELETE("/:id/items/:itemID", ctrls.Shopping.DeleteItem)
		shopping.POST("/:id/generate", ctrls.Shopping.Generate)
	}

	goals := authed.Group("/goals")
	{
		goals.POST("/categories", ctrls.Goal.CreateCategory)
		goals.GET("/categories", ctrls.Goal.ListCategories)
		goals.PATCH("/categories/:id", ctrls.Goal.RenameCategory)
		goals.DELETE("/categories/:id", ctrls.Goal.DeleteCategory)
		goals.POST("", ctrls.Goal.Create)
		goals.GET("", ctrls.Goal.List)
		goals.GET("/:id", ctrls.Goal.Get)
		goals.PATCH("/:id", ctrls.Goal.Update)
		goals.DELETE("/:id", ctrls.Goal.Delete)
		goals.POST("/:id/milestones", ctrls.Goal.AddMilestone)
		goals.PATCH("/:id/milestones/:milestoneID", ctrls.Goal.UpdateMilestone)
		goals.DELETE("/:id/milestones/:milestoneID", ctrls.Goal.DeleteMilestone)
		goals.GET("/:id/history", ctrls.Goal.History)
		goals.PUT("/:id/tags", ctrls.Goal.SetTags)
	}

	habits := authed.Group("/habits")
	{
		habits.POST("", ctrls.Habit.Create)
		habits.GET("", ctrls.Habit.List)
		habits.GET("/:id", ctrls.Habit.Get)
		habits.PATCH("/:id", ctrls.Habit.Update)
		habits.DELETE("/:id", ctrls.Habit.Delete)
		habits.POST("/:id/complete", ctrls.Habit.Complete)
		habits.POST("/:id/uncomplete", ctrls.Habit.Uncomplete)
		habits.GET("/:id/completions", ctrls.Habit.Completions)
		habits.GET("/:id/stats", ctrls.Habit.Stats)
	}

	notebooks := authed.Group("/notebooks")
	{
		notebooks.POST("", ctrls.Notebook.Create)
		notebooks.GET("", ctrls.Notebook.List)
		notebooks.GET("/:id", ctrls.Notebook.Get)
		notebooks.PATCH("/:id", ctrls.Notebook.Rename)
		notebooks.DELETE("/:id", ctrls.Notebook.Delete)
		notebooks.POST("/:id/pages", ctrls.Notebook.AddPage)
		notebooks.PATCH("/:id/pages/:pageID", ctrls.Notebook.UpdatePage)
		notebooks.DELETE("/:id/pages/:pageID", ctrls.Notebook.DeletePage)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", ctrls.Notification.List)
		notifications.GET("/unread-count", ctrls.Notification.UnreadCount)
		notifications.POST("/read-all", ctrls.Notification.MarkAllRead)
		notifications.POST("/:id/read", ctrls.Notification.MarkRead)
		notifications.DELETE("/:id", ctrls.Notification.Delete)
		notifications.GET("/preferences", ctrls.Notification.GetPreferences)
		notifications.PUT("/preferences", ctrls.Notification.UpdatePreferences)
	}

	tags := authed.Group("/tags")
	{
		tags.POST("", ctrls.Tag.Create)
		tags.GET("", ctrls.Tag.List)
		tags.GET("/:id", ctrls.Tag.Get)
		tags.PATCH("/:id", ctrls.Tag.Update)
		tags.DELETE("/:id", ctrls.Tag.Delete)
	}

	authed.POST("/uploads/receipts", ctrls.Upload.PresignUpload)

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
