package logger

// Recognised LOG_LEVEL values; anything else falls back to info
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Recognised LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "habitquest"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

// Attribute keys attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
