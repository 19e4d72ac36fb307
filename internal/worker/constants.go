package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Resolution Sweep
// ============================================================================

// Sweep configuration values
const (
	// SweepInterval is how often the resolution sweep runs
	SweepInterval = 10 * time.Second

	// SweepBatchSize is the maximum number of rounds one sweep resolves
	SweepBatchSize = 10
)

// Log messages for the resolution sweep
const (
	LogMsgSweepStarted     = "Resolution sweep started"
	LogMsgSweepListFailed  = "Failed to list expired rounds"
	LogMsgSweepRoundFailed = "Failed to resolve round, continuing sweep"
	LogMsgSweepCompleted   = "Resolution sweep completed"
)
