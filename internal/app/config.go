package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type Config struct {
	Env, Port string

	DBDriver, DBDSN string

	RedisAddr, RedisPassword string
	// RedirectRateLimit is the number of /r/* hits allowed per IP per minute;
	// 0 disables limiting.
	RedirectRateLimit int

	CORSOrigins   []string
	SweepSchedule string
	SMTP          service.SMTPConfig
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:               getEnv("APP_ENV", "dev"),
		Port:              getEnv("APP_PORT", getEnv("PORT", "8000")),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBDSN:             os.Getenv("DB_DSN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedirectRateLimit: getEnvInt("REDIRECT_RATE_LIMIT", 60),
		CORSOrigins:       strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		SweepSchedule:     getEnv("SWEEP_SCHEDULE", "@hourly"),
		SMTP: service.SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: getEnvInt("SMTP_PORT", 587),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
	}
}
