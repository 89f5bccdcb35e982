package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
	DefaultFirmName    = "CURTIS LAW FIRM"
	DefaultFirmContact = "Phone: (555) 123-4567 | Email: info@curtislawfirm.com"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the template filler server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"

	// Template configuration
	TemplateDirectory string
	OutputDirectory   string
	RulesFile         string
	MaxFileSize       int64 // Maximum template file size in bytes

	// Letterhead identity used by PDF output
	FirmName    string
	FirmContact string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		TemplateDirectory: currentDir,
		OutputDirectory:   filepath.Join(currentDir, "filled"),
		RulesFile:         "",
		MaxFileSize:       DefaultMaxFileSize,
		FirmName:          DefaultFirmName,
		FirmContact:       DefaultFirmContact,
		Version:           "1.0.0",
		ServerName:        "mcp-template-filler",
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.TemplateDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.TemplateDirectory); err == nil {
			cfg.TemplateDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TFA")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.TemplateDirectory)
	viper.SetDefault("out", cfg.OutputDirectory)
	viper.SetDefault("rules", cfg.RulesFile)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("firmname", cfg.FirmName)
	viper.SetDefault("firmcontact", cfg.FirmContact)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("dir", cfg.TemplateDirectory, "Directory containing template files")
	pflag.String("out", cfg.OutputDirectory, "Directory where filled documents are written")
	pflag.String("rules", cfg.RulesFile, "Path to a YAML/JSON derivation rules file")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum template file size in bytes")
	pflag.String("firmname", cfg.FirmName, "Firm name printed on PDF letterheads")
	pflag.String("firmcontact", cfg.FirmContact, "Firm contact line printed on PDF letterheads")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("rules", pflag.Lookup("rules"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("firmname", pflag.Lookup("firmname"))
	_ = viper.BindPFlag("firmcontact", pflag.Lookup("firmcontact"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Template Filler - a Model Context Protocol server that extracts\n")
		fmt.Fprintf(os.Stderr, "placeholder fields from legal templates and generates filled documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                    # stdio mode, current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/templates           # stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --rules=examples/florida_circuits.yaml  # with derivation rules\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TFA_MODE         Server mode\n")
		fmt.Fprintf(os.Stderr, "  TFA_DIR          Template directory\n")
		fmt.Fprintf(os.Stderr, "  TFA_OUT          Output directory\n")
		fmt.Fprintf(os.Stderr, "  TFA_RULES        Derivation rules file\n")
		fmt.Fprintf(os.Stderr, "  TFA_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  TFA_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  TFA_FIRMNAME     PDF letterhead firm name\n")
		fmt.Fprintf(os.Stderr, "  TFA_FIRMCONTACT  PDF letterhead contact line\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.TemplateDirectory = viper.GetString("dir")
	cfg.OutputDirectory = viper.GetString("out")
	cfg.RulesFile = viper.GetString("rules")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.FirmName = viper.GetString("firmname")
	cfg.FirmContact = viper.GetString("firmcontact")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.TemplateDirectory == "" {
		return errors.New("template directory cannot be empty")
	}
	if _, err := os.Stat(c.TemplateDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.TemplateDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create template directory %s: %w", c.TemplateDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access template directory %s: %w", c.TemplateDirectory, err)
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("cannot access rules file %s: %w", c.RulesFile, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.FirmName == "" {
		return errors.New("firm name cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode: %s, TemplateDirectory: %s, OutputDirectory: %s, RulesFile: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.TemplateDirectory, c.OutputDirectory, c.RulesFile, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
