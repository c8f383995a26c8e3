package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// DefaultUser is recorded on activity and comments when no user is configured
const DefaultUser = "system"

// Config holds the unified application configuration
type Config struct {
	DataDir   string `json:"data_dir"`
	Storage   string `json:"storage"`
	User      string `json:"user"`
	ExportDir string `json:"export_dir"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir   string `json:"data_dir,omitempty"`
	Storage   string `json:"storage,omitempty"`
	User      string `json:"user,omitempty"`
	ExportDir string `json:"export_dir,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir string
	Storage string
	User    string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Storage: StorageFile,
		User:    DefaultUser,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.Storage != "" {
				cfg.Storage = fileConfig.Storage
			}
			if fileConfig.User != "" {
				cfg.User = fileConfig.User
			}
			if fileConfig.ExportDir != "" {
				cfg.ExportDir = expandPath(fileConfig.ExportDir)
			}
		}
	}

	// Priority 2: Environment variables override config file
	if envDir := os.Getenv("TASKFLOW_DIR"); envDir != "" {
		cfg.DataDir = expandPath(envDir)
	}
	if envStorage := os.Getenv("TASKFLOW_STORAGE"); envStorage != "" {
		cfg.Storage = envStorage
	}
	if envUser := os.Getenv("TASKFLOW_USER"); envUser != "" {
		cfg.User = envUser
	}
	if envExport := os.Getenv("TASKFLOW_EXPORT_DIR"); envExport != "" {
		cfg.ExportDir = expandPath(envExport)
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Storage != "" {
		cfg.Storage = flags.Storage
	}
	if flags.User != "" {
		cfg.User = flags.User
	}

	// Default directory if nothing configured
	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = cfg.DataDir
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q (want file, sqlite or memory)", cfg.Storage)
	}

	return cfg, nil
}

// GetDefaultDir returns the default directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "taskflow"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskflow", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDirs ensures the data and export directories exist
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.ExportDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir: defaultDir,
		Storage: StorageFile,
		User:    DefaultUser,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
