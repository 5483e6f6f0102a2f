package constants

import "time"

// Context keys set by middleware and read by handlers.
const (
	ContextKeyUser    = "user"
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

const (
	MinPasswordLength = 8

	// TokenTTL is how long a confirmation or password reset code stays valid.
	TokenTTL = 15 * time.Minute

	// TokenSweepInterval is how often expired codes are purged from storage.
	TokenSweepInterval = 5 * time.Minute

	// SessionTTL is the lifetime of an issued session token.
	SessionTTL = 7 * 24 * time.Hour
)

// Pagination bounds for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
