package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUser      = "user"
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Ticket list views
	ViewOpen   = "open"
	ViewClosed = "closed"
)
