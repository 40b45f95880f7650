// Package config assembles runtime settings from environment variables,
// with command line flags layered on top by the caller.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const maxDefaultWorkers = 5

type Config struct {
	// InputPath is a PDF file or a directory of PDFs. Set from the
	// positional argument, never from the environment.
	InputPath string `validate:"required"`

	// OutDir receives the filtered documents; empty means next to the
	// source file.
	OutDir string

	// Workers bounds how many documents are processed at once.
	Workers int `validate:"min=1"`

	// GlobalGroups merges title groups across all documents of a batch,
	// matching the legacy directory behavior. Off by default: unrelated
	// decks sharing a slide title would otherwise share one retention
	// decision.
	GlobalGroups bool

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
}

func Load() *Config {
	return &Config{
		OutDir:       getEnv("COMPACT_OUT_DIR", ""),
		Workers:      getEnvInt("COMPACT_WORKERS", defaultWorkerCount()),
		GlobalGroups: getEnvBool("COMPACT_GLOBAL_GROUPS", false),
		LogLevel:     getEnv("COMPACT_LOG_LEVEL", "info"),
		LogFormat:    getEnv("COMPACT_LOG_FORMAT", "text"),
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func defaultWorkerCount() int {
	return min(runtime.NumCPU(), maxDefaultWorkers)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value == "true" {
		return true
	}
	return defaultValue
}
