package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by DSFUSION_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("DSFUSION_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine, the environment may already be set.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is optional. When set, samples are read from Postgres instead
// of DataFile.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// DataFile returns the sample file path.
// Defaults to "iris.data_subset.csv" if not set.
func DataFile() string {
	p := os.Getenv("DATA_FILE")
	if p == "" {
		return "iris.data_subset.csv"
	}
	return p
}

// DataHasHeader reports whether the first row of DataFile is a header.
// Defaults to true.
func DataHasHeader() bool {
	v, err := strconv.ParseBool(os.Getenv("DATA_HAS_HEADER"))
	if err != nil {
		return true
	}
	return v
}

// DataLabelColumn returns the zero-based column holding the class label.
// Defaults to 4.
func DataLabelColumn() int {
	col, err := strconv.Atoi(os.Getenv("DATA_LABEL_COLUMN"))
	if err != nil || col < 0 {
		return 4
	}
	return col
}

// EvidenceConfigPath returns the YAML evidence table path. Empty means the
// built-in iris table.
func EvidenceConfigPath() string {
	return os.Getenv("EVIDENCE_CONFIG")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
