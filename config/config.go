package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Nonce    NonceConfig
	Catalog  CatalogConfig
	Widget   WidgetConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NonceConfig drives the anti-forgery token. Lifetime is split into two
// windows; a token stays valid for between Lifetime/2 and Lifetime seconds.
type NonceConfig struct {
	Secret   string
	Lifetime int
}

type CatalogConfig struct {
	// ProductBaseURL is joined with a product slug to build its permalink.
	ProductBaseURL string
}

// WidgetConfig is injected into the filter resolver at construction. The
// default images are all-or-nothing substitutes, never mixed into real lists.
type WidgetConfig struct {
	DefaultCarImage    string
	DefaultTowbarImage string
	Currency           CurrencyConfig
}

type CurrencyConfig struct {
	Symbol       string
	Position     string // before or after
	ThousandsSep string
	DecimalSep   string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8084"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "towfit"),
			Password:        getEnv("POSTGRES_PASSWORD", "towfit"),
			DBName:          getEnv("POSTGRES_DB", "towfit_catalog"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_CATALOG", "catalog.events"),
			GroupID: getEnv("KAFKA_GROUP_FILTER", "towbar-filter"),
		},
		Nonce: NonceConfig{
			Secret:   getEnv("NONCE_SECRET", "change-this-in-prod"),
			Lifetime: getEnvInt("NONCE_LIFETIME", 86400),
		},
		Catalog: CatalogConfig{
			ProductBaseURL: getEnv("CATALOG_PRODUCT_BASE_URL", "https://shop.towfit.local/product/"),
		},
		Widget: WidgetConfig{
			DefaultCarImage:    getEnv("WIDGET_DEFAULT_CAR_IMAGE", "https://shop.towfit.local/assets/images/default-car-image.jpg"),
			DefaultTowbarImage: getEnv("WIDGET_DEFAULT_TOWBAR_IMAGE", "https://shop.towfit.local/assets/images/default-towbar-image.jpg"),
			Currency: CurrencyConfig{
				Symbol:       getEnv("WIDGET_CURRENCY_SYMBOL", "฿"),
				Position:     getEnv("WIDGET_CURRENCY_POSITION", "before"),
				ThousandsSep: getEnv("WIDGET_CURRENCY_THOUSANDS_SEP", ","),
				DecimalSep:   getEnv("WIDGET_CURRENCY_DECIMAL_SEP", "."),
			},
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
