package constants

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Validation
const (
	MinPasswordLength = 8
)

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)
