package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreDynamo = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort           string
	AppEnv            string
	LogLevel          string
	StoreBackend      string // "memory" | "dynamo"
	SeedDemo          bool
	AWSRegion         string
	AWSEndpointURL    string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID    string
	AWSSecretKey      string
	DynamoTables      DynamoTables
	S3BucketName      string
	ImageMaxDim       int
	SNSRegion         string
	SNSTopicARN       string
	SMTPEnabled       bool
	SMTPHost          string
	SMTPPort          string
	SMTPFrom          string
	SMTPUsername      string
	SMTPPassword      string
	RabbitMQURL       string
	RabbitMQExchange  string
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	AllowedOrigins    []string // CORS allowed origins
	RequestTimeout    time.Duration
	RateLimitRPS      float64
	RateLimitBurst    int
	AllowSelfClaim    bool
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Items         string
	Claims        string
	Notifications string
	Users         string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:           getEnv("APP_PORT", "3000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StoreBackend:      getEnv("STORE_BACKEND", StoreMemory),
		SeedDemo:          getEnvBool("SEED_DEMO", true),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:    getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:    getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables:      DynamoTables{
			Items:         getEnv("DYNAMO_TABLE_ITEMS", "items"),
			Claims:        getEnv("DYNAMO_TABLE_CLAIMS", "claims"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
		},
		S3BucketName:      getEnv("S3_BUCKET_NAME", ""),
		ImageMaxDim:       getEnvInt("IMAGE_MAX_DIMENSION", 1024),
		SNSRegion:         getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN:       getEnv("SNS_TOPIC_ARN", ""),
		SMTPEnabled:       getEnvBool("SMTP_ENABLED", false),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPFrom:          getEnv("SMTP_FROM", "noreply@findr.local"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange:  getEnv("RABBITMQ_EXCHANGE", "findr.events"),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 10),
		AllowSelfClaim:    getEnvBool("CLAIMS_ALLOW_SELF", false),
	}
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
