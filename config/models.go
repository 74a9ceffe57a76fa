package config

import "time"

type AuthConfig struct {
	Secret     string `mapstructure:"secret" validate:"required,min=16"`
	ExpiryDays int    `mapstructure:"expiry_days" validate:"required,min=1"`
	CookieName string `mapstructure:"cookie_name" validate:"required"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" validate:"required"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RabbitMQConfig struct {
	BrokerLink   string `mapstructure:"broker_link" validate:"required"`
	ExchangeName string `mapstructure:"exchange_name" validate:"required"`
	ExchangeType string `mapstructure:"exchange_type"`
	QueueName    string `mapstructure:"queue_name" validate:"required"`
	RoutingKey   string `mapstructure:"routing_key" validate:"required"`
}

type Config struct {
	Env            string          `mapstructure:"env" validate:"required,oneof=development production"`
	ServiceName    string          `mapstructure:"service_name" validate:"required"`
	Port           int             `mapstructure:"port" validate:"required"`
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	DB             *DBConfig       `mapstructure:"db" validate:"required"`
	Redis          *RedisConfig    `mapstructure:"redis" validate:"required"`
	Auth           *AuthConfig     `mapstructure:"auth" validate:"required"`
	RabbitMQ       *RabbitMQConfig `mapstructure:"rabbitmq"`
}
