package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Варианты приемника отчетов
const (
	SinkAPI      = "api"
	SinkRabbitMQ = "rabbitmq"
	SinkOff      = "off"
)

// Варианты бэкенда кэша детальных ответов
const (
	CacheBackendFile   = "file"
	CacheBackendPebble = "pebble"
)

// DBConfig хранит конфигурацию для БД
type DBConfig struct {
	URL string
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

// ReportAPIConfig хранит конфигурацию внешнего API отчетов
type ReportAPIConfig struct {
	URL string
}

// FetcherConfig управляет вежливостью запросов к порталу
type FetcherConfig struct {
	SleepMinSeconds int
	SleepMaxSeconds int
	DisableSleep    bool
}

// CacheConfig хранит конфигурацию рабочего кэша
type CacheConfig struct {
	Backend string
	Dir     string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	Database    DBConfig
	RabbitMQ    RabbitMQConfig
	ReportAPI   ReportAPIConfig
	Fetcher     FetcherConfig
	Cache       CacheConfig
	Sink        string
	MetricsAddr string
	LogFile     string
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env подхватывается, если существует; его отсутствие не ошибка.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.Sink = getEnvAsString("SINK", SinkAPI)
	switch cfg.Sink {
	case SinkAPI:
		cfg.ReportAPI.URL = os.Getenv("REPORT_API_URL")
		if cfg.ReportAPI.URL == "" {
			return nil, fmt.Errorf("REPORT_API_URL environment variable is required when SINK=api")
		}
	case SinkRabbitMQ:
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when SINK=rabbitmq")
		}
	case SinkOff:
		// Отправка выключена: заказы будут помечаться отправленными
		// без обращения к внешнему API.
	default:
		return nil, fmt.Errorf("unknown SINK value %q (expected api, rabbitmq or off)", cfg.Sink)
	}

	cfg.Cache.Backend = getEnvAsString("CACHE_BACKEND", CacheBackendFile)
	if cfg.Cache.Backend != CacheBackendFile && cfg.Cache.Backend != CacheBackendPebble {
		return nil, fmt.Errorf("unknown CACHE_BACKEND value %q (expected file or pebble)", cfg.Cache.Backend)
	}
	cfg.Cache.Dir = getEnvAsString("CACHE_DIR", "./data")

	cfg.Fetcher.SleepMinSeconds = getEnvAsInt("SLEEP_MIN_SECONDS", 2)
	cfg.Fetcher.SleepMaxSeconds = getEnvAsInt("SLEEP_MAX_SECONDS", 4)
	cfg.Fetcher.DisableSleep = getEnvAsBool("DISABLE_SLEEP", false)
	if cfg.Fetcher.SleepMaxSeconds < cfg.Fetcher.SleepMinSeconds {
		return nil, fmt.Errorf("SLEEP_MAX_SECONDS (%d) must not be less than SLEEP_MIN_SECONDS (%d)",
			cfg.Fetcher.SleepMaxSeconds, cfg.Fetcher.SleepMinSeconds)
	}

	cfg.MetricsAddr = getEnvAsString("METRICS_ADDR", "")
	cfg.LogFile = getEnvAsString("LOG_FILE", "errors.log")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует предупреждение, если переменная есть, но не разбирается как int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
