package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string
	SNSTopicARN  string

	JWTPublicKeyPath string

	// OTPTTL is the validity window of an issued signature code. A restart
	// drops all outstanding codes, so the window must be short enough that
	// clients simply re-request.
	OTPTTL             time.Duration
	OTPDeliveryTimeout time.Duration
	DefaultSignerID    string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Orders string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Orders: getEnv("DYNAMO_TABLE_ORDERS", "purchase_orders"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "po-signed-documents"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),

		OTPTTL:             time.Duration(getEnvInt("OTP_TTL_MINUTES", 3)) * time.Minute,
		OTPDeliveryTimeout: time.Duration(getEnvInt("OTP_DELIVERY_TIMEOUT_SECONDS", 10)) * time.Second,
		DefaultSignerID:    getEnv("DEFAULT_SIGNER_ID", "admin"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

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
