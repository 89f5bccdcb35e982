package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "mcp-template-filler" {
		t.Errorf("Expected default server name to be 'mcp-template-filler', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 50*1024*1024 {
		t.Errorf("Expected default max file size to be 50MB, got %d", cfg.MaxFileSize)
	}

	if cfg.FirmName != DefaultFirmName {
		t.Errorf("Expected default firm name to be '%s', got '%s'", DefaultFirmName, cfg.FirmName)
	}

	if cfg.RulesFile != "" {
		t.Errorf("Expected no default rules file, got '%s'", cfg.RulesFile)
	}

	// Test that template directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.TemplateDirectory != currentDir {
		t.Errorf("Expected default template directory to be '%s', got '%s'", currentDir, cfg.TemplateDirectory)
	}

	if cfg.OutputDirectory != filepath.Join(currentDir, "filled") {
		t.Errorf("Expected default output directory under the working directory, got '%s'", cfg.OutputDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir := t.TempDir()

	valid := func() *Config {
		return &Config{
			Mode:              "stdio",
			TemplateDirectory: tempDir,
			OutputDirectory:   filepath.Join(tempDir, "filled"),
			LogLevel:          "info",
			MaxFileSize:       1024,
			FirmName:          "CURTIS LAW FIRM",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid config - server mode",
			mutate:  func(c *Config) { c.Mode = "server" },
			wantErr: false,
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "invalid" },
			wantErr: true,
		},
		{
			name:    "empty template directory",
			mutate:  func(c *Config) { c.TemplateDirectory = "" },
			wantErr: true,
		},
		{
			name:    "empty output directory",
			mutate:  func(c *Config) { c.OutputDirectory = "" },
			wantErr: true,
		},
		{
			name:    "missing rules file",
			mutate:  func(c *Config) { c.RulesFile = filepath.Join(tempDir, "absent.yaml") },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
		{
			name:    "empty firm name",
			mutate:  func(c *Config) { c.FirmName = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesTemplateDirectory(t *testing.T) {
	tempParent := t.TempDir()
	missing := filepath.Join(tempParent, "templates")

	cfg := &Config{
		Mode:              "stdio",
		TemplateDirectory: missing,
		OutputDirectory:   filepath.Join(tempParent, "filled"),
		LogLevel:          "info",
		MaxFileSize:       1024,
		FirmName:          "CURTIS LAW FIRM",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}

	if _, err := os.Stat(missing); err != nil {
		t.Errorf("template directory should have been created: %v", err)
	}
}

func TestConfigValidateRulesFile(t *testing.T) {
	tempDir := t.TempDir()
	rules := filepath.Join(tempDir, "rules.yaml")
	if err := os.WriteFile(rules, []byte("derivations: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		Mode:              "stdio",
		TemplateDirectory: tempDir,
		OutputDirectory:   filepath.Join(tempDir, "filled"),
		RulesFile:         rules,
		LogLevel:          "info",
		MaxFileSize:       1024,
		FirmName:          "CURTIS LAW FIRM",
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Config.Validate() should accept an existing rules file, got: %v", err)
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{name: "debug level", logLevel: "debug", want: true},
		{name: "info level", logLevel: "info", want: false},
		{name: "warn level", logLevel: "warn", want: false},
		{name: "error level", logLevel: "error", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:              "server",
		TemplateDirectory: "/home/user/templates",
		OutputDirectory:   "/home/user/filled",
		RulesFile:         "/home/user/rules.yaml",
		LogLevel:          "debug",
		MaxFileSize:       1024,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: server",
		"TemplateDirectory: /home/user/templates",
		"OutputDirectory: /home/user/filled",
		"RulesFile: /home/user/rules.yaml",
		"LogLevel: debug",
		"MaxFileSize: 1024",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}

func TestConfigValidateLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	validLevels := []string{"debug", "info", "warn", "error"}
	invalidLevels := []string{"DEBUG", "INFO", "trace", "fatal", ""}

	build := func(level string) *Config {
		return &Config{
			Mode:              "stdio",
			TemplateDirectory: tempDir,
			OutputDirectory:   filepath.Join(tempDir, "filled"),
			LogLevel:          level,
			MaxFileSize:       1024,
			FirmName:          "CURTIS LAW FIRM",
		}
	}

	for _, level := range validLevels {
		t.Run("valid_"+level, func(t *testing.T) {
			if err := build(level).Validate(); err != nil {
				t.Errorf("Config.Validate() should accept log level '%s', got error: %v", level, err)
			}
		})
	}

	for _, level := range invalidLevels {
		t.Run("invalid_"+level, func(t *testing.T) {
			if err := build(level).Validate(); err == nil {
				t.Errorf("Config.Validate() should reject log level '%s'", level)
			}
		})
	}
}

func TestConfigIsServerMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "server mode", mode: "server", want: true},
		{name: "stdio mode", mode: "stdio", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsServerMode(); got != tt.want {
				t.Errorf("Config.IsServerMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "stdio mode", mode: "stdio", want: true},
		{name: "server mode", mode: "server", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.want {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
