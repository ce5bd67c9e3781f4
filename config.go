package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config collects every environment knob the harness reads. It is
// parsed once at startup so a missing installation root fails before
// any command is produced.
type Config struct {
	ImpalaHome        string
	RecordServiceHome string
	Placement         Placement
	Warmup            int
	Attempts          int
	ClearCaches       bool
	ResultsDbUrl      string
	ReportDir         string
}

type MissingEnvError struct {
	Variable string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %v is not set", e.Variable)
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func BoolEnv(key string, def bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

// LoadConfig reads the process environment. The installation roots
// are checked by the command builders that need them, so the error
// can name both the variable and the case that wanted it.
func LoadConfig() (Config, error) {
	placement, err := ParsePlacement(StringEnv("BENCHMARK_PLACEMENT", string(PlacementLocal)))
	if err != nil {
		return Config{}, err
	}
	config := Config{
		ImpalaHome:        StringEnv("IMPALA_HOME", ""),
		RecordServiceHome: StringEnv("RECORD_SERVICE_HOME", ""),
		Placement:         placement,
		Warmup:            IntEnv("BENCHMARK_WARMUP", 1),
		Attempts:          IntEnv("BENCHMARK_ATTEMPTS", 3),
		ClearCaches:       BoolEnv("BENCHMARK_CLEAR_CACHES", false),
		ResultsDbUrl:      StringEnv("RESULTS_DB_URL", ""),
		ReportDir:         StringEnv("REPORT_DIR", "."),
	}
	if config.Attempts <= 0 {
		return Config{}, fmt.Errorf("BENCHMARK_ATTEMPTS must be positive, got %v", config.Attempts)
	}
	if config.Warmup < 0 {
		return Config{}, fmt.Errorf("BENCHMARK_WARMUP must be non-negative, got %v", config.Warmup)
	}
	return config, nil
}

func (c *Config) impalaHome() (string, error) {
	if c.ImpalaHome == "" {
		return "", &MissingEnvError{Variable: "IMPALA_HOME"}
	}
	return c.ImpalaHome, nil
}

func (c *Config) recordServiceHome() (string, error) {
	if c.RecordServiceHome == "" {
		return "", &MissingEnvError{Variable: "RECORD_SERVICE_HOME"}
	}
	return c.RecordServiceHome, nil
}
