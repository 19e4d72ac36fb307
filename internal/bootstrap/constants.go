package bootstrap

import "time"

// Log messages for application startup and shutdown
const (
	LogMsgLoggingInitialized     = "Logging initialized"
	LogMsgStartingApplication    = "Starting pricetide"
	LogMsgConfigurationLoaded    = "Configuration loaded"
	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgOraclesInitialized     = "Oracle clients initialized"
	LogMsgOracleCacheEnabled     = "Oracle price cache enabled"
	LogMsgShuttingDownServer     = "Shutting down server"
	LogMsgServerForcedShutdown   = "Server forced to shutdown"
	LogMsgServerStopped          = "Server stopped"

	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
)

// Database pool settings
const (
	DBMaxConns        = 10
	DBMaxConnIdleTime = 5 * time.Minute
	DBMaxConnLifetime = 30 * time.Minute
)

// Oracle cache TTL for sampled prices
const OracleCacheTTL = 5 * time.Second

// Directory permission for created directories
const DirPermission = 0755

// Log retention
const (
	LogDirDefault = "logs"
	LogKeepCount  = 9
)
