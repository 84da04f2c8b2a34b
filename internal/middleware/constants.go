package middleware

// HeaderUserID carries the caller's user id, set by the upstream auth provider
const HeaderUserID = "X-User-ID"

// Default Values
const (
	// EmptyUserID represents an empty or missing user ID
	EmptyUserID = ""
)

// Response messages
const (
	ErrMsgMissingUserID   = "Missing X-User-ID header"
	ErrMsgInvalidUserID   = "X-User-ID must be a UUID"
	ErrMsgProvisionFailed = "Internal server error"
)

// Log Messages
const (
	LogMsgMissingUserID   = "Request without user identity rejected"
	LogMsgInvalidUserID   = "Request with malformed user identity rejected"
	LogMsgProvisionFailed = "Failed to provision character"
)
