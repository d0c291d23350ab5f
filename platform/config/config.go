package config

import (
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	HTTPAddr       string
	SocketAddr     string
	AllowedOrigins []string
	JWTSecret      string
	RedisURL       string
	SnapshotTTL    time.Duration
	DBAddr         string
	DBUser         string
	DBPassword     string
	DBName         string
	RollDelay      time.Duration
}

// Load reads the process environment, .env included.
func Load() Config {
	return Config{
		HTTPAddr:       env("HTTP_ADDR", ":4101"),
		SocketAddr:     env("SOCKET_ADDR", ":8000"),
		AllowedOrigins: list(env("ALLOWED_ORIGINS", "http://localhost:3000")),
		JWTSecret:      env("JWT_SECRET", "secret"),
		RedisURL:       os.Getenv("REDIS_URL"),
		SnapshotTTL:    duration("SNAPSHOT_TTL", 6*time.Hour),
		DBAddr:         os.Getenv("DB_ADDR"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		RollDelay:      duration("ROLL_DELAY", 480*time.Millisecond),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func list(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
