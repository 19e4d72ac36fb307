package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0644

// Log message constants
const (
	LogMsgEventPublishFailed = "Event publish failed, writing to dead-letter"
	LogMsgDeadLetterFailed   = "Failed to write to dead letter"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
