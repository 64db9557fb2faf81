package errors

// Error code constants returned in the "error" field of failure
// responses. Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these
// to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Household (HOUSEHOLD_) ====================
	HouseholdNotFound         = "HOUSEHOLD_NOT_FOUND"
	HouseholdNotEmpty         = "HOUSEHOLD_NOT_EMPTY"
	HouseholdOwnerCannotLeave = "HOUSEHOLD_OWNER_CANNOT_LEAVE"
	InvitationNotFound        = "INVITATION_NOT_FOUND"
	InvitationNotPending      = "INVITATION_NOT_PENDING"

	// ==================== Receipts (RECEIPT_) ====================
	TripNotFound      = "TRIP_NOT_FOUND"
	TripStoreRequired = "TRIP_STORE_REQUIRED"
	StopNotFound      = "STOP_NOT_FOUND"
	StoreNotFound     = "STORE_NOT_FOUND"
	PurchaseNotFound  = "PURCHASE_NOT_FOUND"

	// ==================== Budget (BUDGET_) ====================
	BudgetSourceNotFound   = "BUDGET_SOURCE_NOT_FOUND"
	BudgetEntryNotFound    = "BUDGET_ENTRY_NOT_FOUND"
	BudgetEntryHasPurchase = "BUDGET_ENTRY_HAS_PURCHASE"

	// ==================== Tasks (TASK_) ====================
	TaskNotFound     = "TASK_NOT_FOUND"
	TaskStepNotFound = "TASK_STEP_NOT_FOUND"

	// ==================== Inventory / shopping (STOCK_) ====================
	SheetNotFound         = "SHEET_NOT_FOUND"
	InventoryItemNotFound = "INVENTORY_ITEM_NOT_FOUND"
	ListNotFound          = "LIST_NOT_FOUND"
	ListItemNotFound      = "LIST_ITEM_NOT_FOUND"
	ListItemUnnamed       = "LIST_ITEM_UNNAMED"

	// ==================== Goals / habits (GOAL_/HABIT_) ====================
	GoalNotFound            = "GOAL_NOT_FOUND"
	HabitNotFound           = "HABIT_NOT_FOUND"
	HabitAlreadyCompleted   = "HABIT_ALREADY_COMPLETED"
	HabitSkipReasonRequired = "HABIT_SKIP_REASON_REQUIRED"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound    = "NOTIFICATION_NOT_FOUND"
	NotificationInvalidLink = "NOTIFICATION_INVALID_LINK"

	// ==================== Tags (TAG_) ====================
	TagNotFound      = "TAG_NOT_FOUND"
	TagAlreadyExists = "TAG_ALREADY_EXISTS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
