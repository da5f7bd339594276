package config

import (
	"fmt"
	"os"
)

type Config struct {
	DBPath     string
	ServerPort string
}

func Load() *Config {
	return &Config{
		DBPath:     getEnv("TRACKER_DB_PATH", "./appointments.db"),
		ServerPort: getEnv("TRACKER_PORT", "6060"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
