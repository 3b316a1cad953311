package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bibbank/bib/pkg/iso20022"
)

// SchemaAuto lets the schema router choose the variant per request.
const SchemaAuto = "auto"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	TLS       TLSConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	SCT       CreditTransferConfig
	LogLevel  string
	LogFormat string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether the HTTP listener should serve TLS.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// KafkaConfig configures domain event publishing. With no brokers events
// are only logged.
type KafkaConfig struct {
	Brokers       []string
	TLS           bool
	CAFile        string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// AuthConfig configures bearer token checks. With neither a secret nor a
// public key the endpoint is unauthenticated.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	JWTIssuer        string
}

// Enabled reports whether bearer tokens are required.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != "" || c.JWTPublicKeyFile != ""
}

type TelemetryConfig struct {
	ServiceName string
}

// CreditTransferConfig holds the pain.001 generation settings.
type CreditTransferConfig struct {
	DefaultSchema   string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Validate checks configuration values that would otherwise fail at request time.
func (c Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort)
	}
	if c.SCT.DefaultSchema != SchemaAuto && !iso20022.Schema(c.SCT.DefaultSchema).Known() {
		return fmt.Errorf("SCT_DEFAULT_SCHEMA %q is neither %q nor a supported schema", c.SCT.DefaultSchema, SchemaAuto)
	}
	if c.SCT.MaxBodyBytes <= 0 {
		return fmt.Errorf("SCT_MAX_BODY_BYTES must be positive")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	switch c.Kafka.SASLMechanism {
	case "", "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
	default:
		return fmt.Errorf("KAFKA_SASL_MECHANISM %q is not supported", c.Kafka.SASLMechanism)
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8086),
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			CAFile:        getEnv("KAFKA_CA_FILE", ""),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			JWTIssuer:        getEnv("JWT_ISSUER", ""),
		},
		Telemetry: TelemetryConfig{
			ServiceName: getEnv("OTEL_SERVICE_NAME", "payment-service"),
		},
		SCT: CreditTransferConfig{
			DefaultSchema:   getEnv("SCT_DEFAULT_SCHEMA", SchemaAuto),
			MaxBodyBytes:    int64(getEnvInt("SCT_MAX_BODY_BYTES", 1<<20)),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
