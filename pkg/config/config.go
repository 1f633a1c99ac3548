package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	Cache   CacheConfig
	Web     WebConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SourceConfig struct {
	Driver     string
	TimeoutSec int
	CSV        CSVConfig
	Postgres   PostgresConfig
	SQLite     SQLiteConfig
}

type CSVConfig struct {
	Path string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Table    string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type SQLiteConfig struct {
	Path string
}

type CacheConfig struct {
	Driver     string
	TTLSeconds int
	Redis      RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type WebConfig struct {
	Dir string
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/monitores-energia")

	viper.SetEnvPrefix("MONITORES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch config.Source.Driver {
	case "csv", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unknown source driver %q", config.Source.Driver)
	}

	switch config.Cache.Driver {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", config.Cache.Driver)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 10485760)

	viper.SetDefault("source.driver", "csv")
	viper.SetDefault("source.timeoutSec", 15)
	viper.SetDefault("source.csv.path", "./acompanhamento_monitores_energia.csv")
	viper.SetDefault("source.postgres.host", "localhost")
	viper.SetDefault("source.postgres.port", 5432)
	viper.SetDefault("source.postgres.user", "monitores")
	viper.SetDefault("source.postgres.database", "monitores")
	viper.SetDefault("source.postgres.table", "monitor_sites")
	viper.SetDefault("source.postgres.sslmode", "require")
	viper.SetDefault("source.sqlite.path", "./data/monitores.db")

	viper.SetDefault("cache.driver", "memory")
	viper.SetDefault("cache.ttlSeconds", 60)
	viper.SetDefault("cache.redis.host", "localhost")
	viper.SetDefault("cache.redis.port", 6379)
	viper.SetDefault("cache.redis.db", 0)

	viper.SetDefault("web.dir", "./web")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
