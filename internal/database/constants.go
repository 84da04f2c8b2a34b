package database

import "time"

// Database Connection Pool Constants
const (
	DefaultMinConnections  = 2
	DefaultMaxConnections  = 20
	DefaultMaxConnIdleTime = 30 * time.Minute
	DefaultMaxConnLifetime = time.Hour
	PingTimeout            = 5 * time.Second
)

// Migration settings
const (
	MigrationsDir    = "migrations"
	MigrationDriver  = "pgx"
	MigrationDialect = "postgres"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToOpenMigrationDB = "failed to open migration connection"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgRunningMigrations               = "Running database migrations"
)
