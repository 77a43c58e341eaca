package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration for the crack CLI.
type Config struct {
	CapturePath   string
	WordlistPath  string
	ESSIDFilter   string
	Workers       int
	DashboardAddr string
	DBPath        string
	ReportPath    string
	Debug         bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	cfg.DashboardAddr = getEnv("WPACRACK_ADDR", "")
	cfg.Workers = getEnvInt("WPACRACK_WORKERS", 0)
	cfg.DBPath = getEnv("WPACRACK_DB", getDefaultDBPath())
	cfg.ReportPath = getEnv("WPACRACK_REPORT", "")

	flag.StringVar(&cfg.ESSIDFilter, "essid", "", "Only consider handshake records for this ESSID")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent verification workers (0 = one per CPU)")
	flag.StringVar(&cfg.DashboardAddr, "addr", cfg.DashboardAddr, "Dashboard HTTP address (empty to disable)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite session database")
	flag.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Path to write a PDF report (empty to skip)")
	flag.BoolVar(&cfg.Debug, "debug", getEnvBool("WPACRACK_DEBUG", false), "Enable verbose debug logging")

	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		cfg.CapturePath = args[0]
	}
	if len(args) > 1 {
		cfg.WordlistPath = args[1]
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default session database path in the
// user's home directory, creating the containing directory if needed.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "wpacrack.db"
	}

	dir := filepath.Join(home, ".wpacrack")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .wpacrack directory, using current dir: %v", err)
		return "wpacrack.db"
	}

	return filepath.Join(dir, "wpacrack.db")
}
