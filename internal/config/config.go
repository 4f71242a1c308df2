package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	RedisAddr     string // empty means in-memory stores
	ServiceName   string
	Env           string
	TestDriveTTL  time.Duration
	PlateRetryMax int
	SeedCatalog   bool
	VIPAllowList  []string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		ServiceName:   getenv("SERVICE_NAME", "showroom"),
		Env:           getenv("ENV", "dev"),
		TestDriveTTL:  getduration("TESTDRIVE_TTL", 10*time.Minute),
		PlateRetryMax: getint("PLATE_RETRY_MAX", 5),
		SeedCatalog:   getbool("SEED_CATALOG", true),
		VIPAllowList:  splitCSV(getenv("VIP_ALLOW_LIST", "")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
