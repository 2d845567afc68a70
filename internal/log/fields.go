package log

// Common field names for structured logging
const (
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldUserEmail = "user_email"
	FieldDate      = "date"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentWorker = "worker"
)

// Operations defines standard operation names
const (
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
