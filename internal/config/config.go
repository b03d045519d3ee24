package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Config represents the chatlens configuration, read from an ini file at
// ~/.chatlens/config. A missing file is an empty config, not an error.
type Config struct {
	file *ini.File
}

// Load reads the configuration file from ~/.chatlens/config
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(home, ".chatlens", "config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{file: ini.Empty()}, nil
	}

	file, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	return &Config{file: file}, nil
}

// GetString retrieves a string value using section.key format
// (e.g. "ocr.endpoint")
func (c *Config) GetString(key string) string {
	section, keyName := parseKey(key)
	if section == "" {
		return ""
	}
	return c.file.Section(section).Key(keyName).String()
}

// GetInt retrieves an integer value from the config
func (c *Config) GetInt(key string) (int, error) {
	val := c.GetString(key)
	if val == "" {
		return 0, nil
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %w", key, err)
	}
	return intVal, nil
}

// HasKey checks if a key exists in the config
func (c *Config) HasKey(key string) bool {
	section, keyName := parseKey(key)
	if section == "" {
		return false
	}
	return c.file.Section(section).HasKey(keyName)
}

// GetStringWithFallback retrieves a string value with a fallback default
func (c *Config) GetStringWithFallback(key, fallback string) string {
	if c.HasKey(key) {
		return c.GetString(key)
	}
	return fallback
}

// GetIntWithFallback retrieves an int value with a fallback default
func (c *Config) GetIntWithFallback(key string, fallback int) int {
	if c.HasKey(key) {
		val, err := c.GetInt(key)
		if err == nil {
			return val
		}
	}
	return fallback
}

// parseKey splits a dotted key into section and key name using the last
// dot as the separator, e.g. "ocr.endpoint" -> ("ocr", "endpoint")
func parseKey(key string) (string, string) {
	lastDot := strings.LastIndex(key, ".")
	if lastDot == -1 {
		return "", ""
	}
	return key[:lastDot], key[lastDot+1:]
}

// Typed accessors for the settings chatlens actually reads. Environment
// variables override the config file for secrets so keys never have to
// live on disk.

// OCREndpoint returns the text-recognition endpoint URL
func (c *Config) OCREndpoint() string {
	if v := os.Getenv("CHATLENS_OCR_ENDPOINT"); v != "" {
		return v
	}
	return c.GetString("ocr.endpoint")
}

// OCRAPIKey returns the text-recognition API key, if any
func (c *Config) OCRAPIKey() string {
	if v := os.Getenv("CHATLENS_OCR_API_KEY"); v != "" {
		return v
	}
	return c.GetString("ocr.api_key")
}

// OpenAIAPIKey returns the OpenAI API key
func (c *Config) OpenAIAPIKey() string {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	return c.GetString("llm.api_key")
}

// Model returns the suggestion model name
func (c *Config) Model() string {
	return c.GetStringWithFallback("llm.model", "gpt-5-mini")
}

// Retention returns the most-recent-N cap on stored conversations.
// Zero means the store default.
func (c *Config) Retention() int {
	return c.GetIntWithFallback("history.retention", 0)
}
