package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pvm-php/pvm/internal/config/validate"
	"github.com/pvm-php/pvm/internal/utils/logger"
	"github.com/pvm-php/pvm/internal/utils/security"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

var log = logger.Logger()

const (
	// DefaultRootName is the directory created under the home directory when
	// no root_dir is configured.
	DefaultRootName = ".pvm"

	buildsName   = "builds"
	versionsName = "versions"
)

// GlobalConfig holds tool-level settings.
type GlobalConfig struct {
	RootDir     string `yaml:"root_dir" json:"root_dir"`                             // Root of all pvm state (default: ~/.pvm)
	BuildsDir   string `yaml:"builds_dir,omitempty" json:"builds_dir,omitempty"`     // Source build directory (empty: <root_dir>/builds)
	VersionsDir string `yaml:"versions_dir,omitempty" json:"versions_dir,omitempty"` // Installed versions (empty: <root_dir>/versions)

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig controls basic logging behavior
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`                   // debug, info (default), warn, error
	File  string `yaml:"file,omitempty" json:"file,omitempty"` // Optional log file path for teeing output to disk
}

var (
	globalInstance *GlobalConfig
	globalMutex    sync.RWMutex
)

// SetGlobal sets the global config instance (call once at startup in main.go)
func SetGlobal(config *GlobalConfig) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalInstance = config
}

// Global returns the global config instance, falling back to defaults.
func Global() *GlobalConfig {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalInstance == nil {
		globalInstance = DefaultGlobalConfig()
	}
	return globalInstance
}

// DefaultRootDir returns ~/.pvm, or a relative .pvm when the home directory
// cannot be determined.
func DefaultRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		log.Warnf("Unable to determine home directory (%v); using ./%s", err, DefaultRootName)
		return DefaultRootName
	}
	return filepath.Join(home, DefaultRootName)
}

// DefaultGlobalConfig returns a GlobalConfig with sensible defaults
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		RootDir: DefaultRootDir(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadGlobalConfig loads configuration from configPath on top of the
// defaults. A missing or unreadable file yields the defaults.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	config := DefaultGlobalConfig()
	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		if errors.Is(err, os.ErrPermission) {
			log.Warnf("Config file %s is not accessible (%v); using defaults", configPath, err)
			return config, nil
		}
		return nil, fmt.Errorf("accessing config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	data, err := security.SafeReadFile(configPath, security.RejectSymlinks)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing YAML config: %w", err)
	}

	// The struct drops unknown keys, so the file itself goes through the schema.
	if err := validateFileSchema(data); err != nil {
		return nil, err
	}
	if err := config.validateSchema(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Debugf("Loaded configuration from %s", configPath)
	return config, nil
}

func validateFileSchema(data []byte) error {
	jsonData, err := k8syaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	// An empty file converts to null and leaves every default in place.
	if string(bytes.TrimSpace(jsonData)) == "null" {
		return nil
	}
	if err := validate.ValidateConfigJSON(jsonData); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (gc *GlobalConfig) validateSchema() error {
	jsonData, err := json.Marshal(gc)
	if err != nil {
		return fmt.Errorf("converting config to JSON for validation: %w", err)
	}
	if err := validate.ValidateConfigJSON(jsonData); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// SaveGlobalConfig writes the configuration as plain YAML.
func (gc *GlobalConfig) SaveGlobalConfig(configPath string) error {
	if err := gc.validateSchema(); err != nil {
		return err
	}
	data, err := yaml.Marshal(gc)
	if err != nil {
		return fmt.Errorf("marshaling config to YAML: %w", err)
	}
	return writeConfigFile(configPath, data)
}

// SaveGlobalConfigWithComments writes the configuration with a comment for
// every setting. Used by `pvm config init`.
func (gc *GlobalConfig) SaveGlobalConfigWithComments(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is empty")
	}
	if err := gc.validateSchema(); err != nil {
		return err
	}
	return writeConfigFile(configPath, []byte(gc.renderCommentedYAML()))
}

func writeConfigFile(configPath string, data []byte) error {
	if dir := filepath.Dir(configPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := security.SafeWriteFile(configPath, data, 0o600, security.RejectSymlinks); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (gc *GlobalConfig) renderCommentedYAML() string {
	var b strings.Builder

	b.WriteString("# PVM - Global Configuration\n")
	b.WriteString("# Settings shared by every pvm command.\n\n")

	fmt.Fprintf(&b, "root_dir: %q\n", gc.RootDir)
	b.WriteString("# Root directory for all pvm state (default: ~/.pvm)\n\n")

	fmt.Fprintf(&b, "builds_dir: %q\n", gc.BuildsDir)
	b.WriteString("# Where PHP sources are unpacked and compiled (empty: <root_dir>/builds)\n\n")

	fmt.Fprintf(&b, "versions_dir: %q\n", gc.VersionsDir)
	b.WriteString("# One subdirectory per installed PHP version (empty: <root_dir>/versions)\n\n")

	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  level: %q\n", gc.Logging.Level)
	b.WriteString("  # debug, info, warn or error (default: info)\n")
	if gc.Logging.File != "" {
		fmt.Fprintf(&b, "  file: %q\n", gc.Logging.File)
		b.WriteString("  # Tee logs to this file as JSON lines\n")
	}

	return b.String()
}

// Validate checks the configuration for consistency. It normalizes
// whitespace but never fills in defaults.
func (gc *GlobalConfig) Validate() error {
	gc.RootDir = strings.TrimSpace(gc.RootDir)
	gc.BuildsDir = strings.TrimSpace(gc.BuildsDir)
	gc.VersionsDir = strings.TrimSpace(gc.VersionsDir)
	gc.Logging.File = strings.TrimSpace(gc.Logging.File)

	if gc.RootDir == "" {
		return fmt.Errorf("root_dir cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, gc.Logging.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			gc.Logging.Level, strings.Join(validLevels, ", "))
	}

	lim := security.DefaultLimits()
	if err := security.ValidateStructStrings(gc, lim); err != nil {
		return err
	}
	return nil
}

// GetConfigPaths returns the configuration file locations, in search order.
func GetConfigPaths() []string {
	paths := []string{
		"pvm.yml",
		".pvm.yml",
		"pvm.yaml",
		".pvm.yaml",
	}

	if home, _ := os.UserHomeDir(); home != "" {
		paths = append(paths,
			filepath.Join(home, DefaultRootName, "config.yml"),
			filepath.Join(home, DefaultRootName, "config.yaml"),
			filepath.Join(home, ".config", "pvm", "config.yml"),
			filepath.Join(home, ".config", "pvm", "config.yaml"),
		)
	}

	return append(paths,
		"/etc/pvm/config.yml",
		"/etc/pvm/config.yaml",
	)
}

// FindConfigFile returns the first existing configuration file, or "".
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func LogLevel() string {
	return Global().Logging.Level
}
