package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	InputPattern string
	YearFrom     int `validate:"gte=1900"`
	YearTo       int `validate:"gtefield=YearFrom"`
	OutputPath   string
	LookupPath   string

	SinkDriver    string `validate:"oneof=sqlite mysql"`
	SinkHost      string
	SinkDatabase  string
	SinkUser      string
	SinkPassword  string
	SinkBatchSize int `validate:"max=2000"`

	UnmappedPolicy string `validate:"omitempty,oneof=passthrough warn unknown"`
	LogLevel       string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		InputPattern: getEnv("INPUT_PATTERN", "./input/*.xlsx"),
		YearFrom:     getEnvInt("YEAR_FROM", 2018),
		YearTo:       getEnvInt("YEAR_TO", 2025),
		OutputPath:   getEnv("OUTPUT_PATH", "./resultados/Unido.xlsx"),
		LookupPath:   getEnv("LOOKUP_PATH", ""),

		SinkDriver:    strings.ToLower(strings.TrimSpace(getEnv("SINK_DRIVER", "sqlite"))),
		SinkHost:      getEnv("SINK_HOST", "localhost"),
		SinkDatabase:  getEnv("SINK_DATABASE", "./data/BD_Unica.db"),
		SinkUser:      getEnv("SINK_USER", ""),
		SinkPassword:  getEnv("SINK_PASSWORD", ""),
		SinkBatchSize: getEnvInt("SINK_BATCH_SIZE", 1000),

		UnmappedPolicy: strings.ToLower(strings.TrimSpace(getEnv("UNMAPPED_POLICY", "passthrough"))),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.SinkBatchSize <= 0 {
		cfg.SinkBatchSize = 1000
	}

	return cfg, nil
}

// Years expands the inclusive year range into the allow-list used for file
// discovery.
func (c Config) Years() []int {
	out := make([]int, 0, c.YearTo-c.YearFrom+1)
	for y := c.YearFrom; y <= c.YearTo; y++ {
		out = append(out, y)
	}
	return out
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
