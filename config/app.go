package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// App holds every setting read from the environment (or a config.yaml).
type App struct {
	Port string `mapstructure:"APP_PORT"`
	Env  string `mapstructure:"APP_ENV"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	MySQLURL    string `mapstructure:"MYSQL_URL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPass      string `mapstructure:"DB_PASS"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSeed      bool   `mapstructure:"DB_SEED"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	RateCacheTTL  time.Duration `mapstructure:"RATE_CACHE_TTL"`

	RabbitURL string `mapstructure:"RABBITMQ_URL"`

	CorsOrigins     string `mapstructure:"CORS_ORIGINS"`
	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`
}

func (a App) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Load reads .env (optional), then the environment, into App.
func Load() App {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("MYSQL_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "hotel_db")
	v.SetDefault("DB_SEED", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_CACHE_TTL", "5m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_PER_MIN", 200)

	if err := v.ReadInConfig(); err != nil {
		log.Println("no config file found, using environment variables only")
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
