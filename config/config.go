package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServicePort    string
	MetricsPort    string
	Environment    string
	FrontendURL    string
	AllowedOrigins []string
	MongoDBConfig  MongoDBConfig
	KafkaConfig    KafkaConfig
	JWTConfig      JWTConfig
	TracingConfig  TracingConfig
	OutboxConfig   OutboxConfig
}

type MongoDBConfig struct {
	URI    string
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type JWTConfig struct {
	Secret       string
	Expire       time.Duration
	CookieExpire time.Duration
}

type TracingConfig struct {
	CollectorHost string
}

type OutboxConfig struct {
	RelayInterval time.Duration
	Retention     time.Duration
	BatchSize     int64
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "4000"),
		MetricsPort: getEnv("METRICS_PORT", "9100"),
		Environment: getEnv("ENVIRONMENT", "production"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGO_URI"),
			DBHost: getEnv("DB_HOST", "localhost"),
			DBPort: getEnv("DB_PORT", "27017"),
			DBName: getEnv("DB_NAME", "bagify"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "order-events"),
		},
		JWTConfig: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			conf.AllowedOrigins = append(conf.AllowedOrigins, origin)
		}
	}
	if len(conf.AllowedOrigins) == 0 {
		conf.AllowedOrigins = []string{conf.FrontendURL}
	}

	brokerPartition, err := strconv.Atoi(getEnv("BROKER_PARTITION", "0"))
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Msg("invalid BROKER_PARTITION, using 0")
	}
	conf.KafkaConfig.BrokerPartition = brokerPartition

	conf.JWTConfig.Expire = time.Duration(getEnvInt("JWT_EXPIRE", 24*5)) * time.Hour
	conf.JWTConfig.CookieExpire = time.Duration(getEnvInt("COOKIE_EXPIRE", 5)) * 24 * time.Hour
	conf.OutboxConfig = OutboxConfig{
		RelayInterval: getEnvDuration("OUTBOX_RELAY_INTERVAL", 5*time.Second),
		Retention:     getEnvDuration("OUTBOX_RETENTION", 24*time.Hour),
		BatchSize:     int64(getEnvInt("OUTBOX_BATCH_SIZE", 100)),
	}

	return &conf
}

// MongoURI prefers MONGO_URI and falls back to DB_HOST/DB_PORT.
func (c *Config) MongoURI() string {
	if c.MongoDBConfig.URI != "" {
		return c.MongoDBConfig.URI
	}

	return fmt.Sprintf("mongodb://%s:%s", c.MongoDBConfig.DBHost, c.MongoDBConfig.DBPort)
}

func (c *Config) KafkaEnabled() bool {
	return c.KafkaConfig.BrokerAddress != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
