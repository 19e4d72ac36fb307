package config

// Default configuration values
const (
	DefaultPort            = 8080
	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 100
)
