package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"practice-kpi/internal/kpi"
	"practice-kpi/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sheets       sheets.Config
	Routes       kpi.Routes
	DataPath     string
	LogDir       string
	SnapshotDir  string
	LookbackDays int
	Offline      bool
}

// Load loads the configuration from .env files, environment variables, and
// the YAML routes file.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first (the binary is
	// often launched by an MCP host with an arbitrary working directory).
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	snapshotDir := filepath.Join(dataPath, "snapshots")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("SHEETS_REQUEST_DELAY_SECONDS", "2"))
	lookback, _ := strconv.Atoi(getEnv("KPI_LOOKBACK_DAYS", "90"))

	routesPath := getEnv("ROUTES_FILE", filepath.Join(dataPath, "routes.yaml"))
	routes, err := LoadRoutes(routesPath)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Sheets: sheets.Config{
			BaseURL:      getEnv("SHEETS_BASE_URL", ""),
			APIKey:       getEnv("SHEETS_API_KEY", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		Routes:       routes,
		DataPath:     dataPath,
		LogDir:       logDir,
		SnapshotDir:  snapshotDir,
		LookbackDays: lookback,
		Offline:      getEnvBool("KPI_OFFLINE", false),
	}

	return cfg, nil
}

// LoadRoutes parses the YAML routing file holding the alias -> sheet source
// mapping and the location -> dataset -> alias mapping.
func LoadRoutes(path string) (kpi.Routes, error) {
	var routes kpi.Routes

	data, err := os.ReadFile(path)
	if err != nil {
		return routes, fmt.Errorf("failed to read routes file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return routes, fmt.Errorf("failed to parse routes file %s: %w", path, err)
	}

	log.Info().Str("path", path).
		Int("sources", len(routes.Sources)).
		Int("locations", len(routes.Locations)).
		Msg("Loaded routing configuration")
	return routes, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
