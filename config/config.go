package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Log      Log
	Gemini   Gemini

	// SweepInterval drives the deadline sweeper. Zero disables it.
	SweepInterval time.Duration
}

type Server struct {
	Port         string
	Mode         string // gin mode: debug, release, test
	AllowOrigins []string
}

type Database struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type Auth struct {
	JWTSecret  string
	CookieName string
	TokenTTL   time.Duration
}

type Log struct {
	Level  string
	Pretty bool
}

type Gemini struct {
	APIKey string
	Model  string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("AUTH_COOKIE_NAME", "session")
	viper.SetDefault("AUTH_TOKEN_TTL", "8h")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("SWEEP_INTERVAL", "0s")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.AllowOrigins = splitCSV(viper.GetString("CORS_ALLOW_ORIGINS"))

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.MaxOpenConns = viper.GetInt("DATABASE_MAX_OPEN_CONNS")
	config.Database.MaxIdleConns = viper.GetInt("DATABASE_MAX_IDLE_CONNS")

	config.Auth.JWTSecret = viper.GetString("AUTH_JWT_SECRET")
	config.Auth.CookieName = viper.GetString("AUTH_COOKIE_NAME")
	config.Auth.TokenTTL = viper.GetDuration("AUTH_TOKEN_TTL")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.SweepInterval = viper.GetDuration("SWEEP_INTERVAL")

	if config.Auth.JWTSecret == "" {
		if config.Server.Mode == "release" {
			log.Warn().Msg("AUTH_JWT_SECRET is not set in release mode; every token will be rejected")
		} else {
			config.Auth.JWTSecret = "dev-only-secret"
		}
	}

	log.Info().Interface("config", config.redacted()).Msg("Config loaded")
	return &config, nil
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" port=" + d.Port +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

func (c Config) redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = "***"
	}
	if c.Auth.JWTSecret != "" {
		c.Auth.JWTSecret = "***"
	}
	if c.Gemini.APIKey != "" {
		c.Gemini.APIKey = "***"
	}
	return c
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
