package config

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Port              string
	LogLevel          string
	AllowedOrigins    []string
	Store             StoreConfig
	Scheduling        SchedulingConfig
	NotificationLimit int
	PushBuffer        int
	S3BucketName      string
}

type StoreConfig struct {
	Backend     string
	AWSRegion   string
	TablePrefix string
}

type SchedulingConfig struct {
	MinOverlapMinutes int
}
