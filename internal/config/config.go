package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию для Catering Bot Service
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"BOT_SERVER_PORT" default:"8080"`
	Env      string `envconfig:"ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки PostgreSQL
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// Таймаут на любой поход в хранилище заказов
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// Настройки Redis (session store + rate limiter)
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// Настройки RabbitMQ. Пустой URL отключает публикацию событий заказов.
	RabbitMQURL      string `envconfig:"RABBITMQ_URL" default:""`
	OrderEventsQueue string `envconfig:"ORDER_EVENTS_QUEUE" default:"lunch_order_events"`

	// CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	// Rate limit на эндпоинт /api/messages (запросов в минуту с одного IP)
	RateLimitPerMinute int64 `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации catering-bot: %w", err)
	}

	log.Printf("Конфигурация Catering Bot загружена:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  Store Timeout: %v", cfg.StoreTimeout)
	log.Printf("  Redis Addr: %s", cfg.RedisAddr)
	log.Printf("  Session TTL: %v", cfg.SessionTTL)
	if cfg.RabbitMQURL != "" {
		log.Printf("  Order Events Queue: %s", cfg.OrderEventsQueue)
	} else {
		log.Printf("  RabbitMQ: отключен (RABBITMQ_URL пуст)")
	}

	return &cfg, nil
}
