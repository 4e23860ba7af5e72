package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration for the navigation bot.
// Immutable after Validate; the core never mutates it.
type Config struct {
	Token        string  // Bot API token for the transport
	Root         string  // Absolute path of the shared folder; all browsing is confined under it
	SecurityMode string  // "open" (anyone) or "restricted" (AdminIDs only)
	AdminIDs     []int64 // Authorized caller ids; required in restricted mode

	PageSize        int   // Entries per keyboard page (Default 15)
	MaxTreeDepth    int   // Tree render depth cap (Default 3)
	MaxTreeLines    int   // Tree render global line cap (Default 300)
	MsgChunkSize    int   // Message chunk size in bytes (Default 3500)
	MaxFileSize     int64 // Largest transferable file in bytes (Default 50MB)
	MaxHandles      int   // Per-user handle table bound (Default 4096)
	TransferTimeout int   // Overall file-send deadline in seconds (Default 300)

	MetricsAddr string // Optional listen address for the Prometheus handler ("" disables)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	Token        *string  `yaml:"token,omitempty" json:"token,omitempty"`
	Root         *string  `yaml:"root,omitempty" json:"root,omitempty"`
	SecurityMode *string  `yaml:"security_mode,omitempty" json:"security_mode,omitempty"`
	AdminIDs     []int64  `yaml:"admin_ids,omitempty" json:"admin_ids,omitempty"`

	PageSize        *int   `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	MaxTreeDepth    *int   `yaml:"max_tree_depth,omitempty" json:"max_tree_depth,omitempty"`
	MaxTreeLines    *int   `yaml:"max_tree_lines,omitempty" json:"max_tree_lines,omitempty"`
	MsgChunkSize    *int   `yaml:"msg_chunk_size,omitempty" json:"msg_chunk_size,omitempty"`
	MaxFileSize     *int64 `yaml:"max_file_size,omitempty" json:"max_file_size,omitempty"`
	MaxHandles      *int   `yaml:"max_handles,omitempty" json:"max_handles,omitempty"`
	TransferTimeout *int   `yaml:"transfer_timeout,omitempty" json:"transfer_timeout,omitempty"`

	MetricsAddr *string `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
// Token, Root and the security fields have no usable defaults and must be
// set before Validate.
func NewDefaultConfig() *Config {
	return &Config{
		SecurityMode:    ModeOpen,
		PageSize:        DefaultPageSize,
		MaxTreeDepth:    DefaultMaxTreeDepth,
		MaxTreeLines:    DefaultMaxTreeLines,
		MsgChunkSize:    DefaultMsgChunkSize,
		MaxFileSize:     DefaultMaxFileSize,
		MaxHandles:      DefaultMaxHandles,
		TransferTimeout: DefaultTransferTimeout,
	}
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Token != nil {
		c.Token = *override.Token
	}
	if override.Root != nil {
		c.Root = *override.Root
	}
	if override.SecurityMode != nil {
		c.SecurityMode = *override.SecurityMode
	}
	if override.AdminIDs != nil {
		c.AdminIDs = override.AdminIDs
	}
	if override.PageSize != nil {
		c.PageSize = *override.PageSize
	}
	if override.MaxTreeDepth != nil {
		c.MaxTreeDepth = *override.MaxTreeDepth
	}
	if override.MaxTreeLines != nil {
		c.MaxTreeLines = *override.MaxTreeLines
	}
	if override.MsgChunkSize != nil {
		c.MsgChunkSize = *override.MsgChunkSize
	}
	if override.MaxFileSize != nil {
		c.MaxFileSize = *override.MaxFileSize
	}
	if override.MaxHandles != nil {
		c.MaxHandles = *override.MaxHandles
	}
	if override.TransferTimeout != nil {
		c.TransferTimeout = *override.TransferTimeout
	}
	if override.MetricsAddr != nil {
		c.MetricsAddr = *override.MetricsAddr
	}
}

// Validate checks the startup invariants: a token, an existing root
// directory, a known security mode, and admins when restricted.
// Misconfiguration here is the only fatal condition in the system.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("bot token is required")
	}
	if c.Root == "" {
		return fmt.Errorf("shared root folder is required")
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", abs)
	}
	c.Root = abs

	switch c.SecurityMode {
	case ModeOpen:
	case ModeRestricted:
		if len(c.AdminIDs) == 0 {
			return fmt.Errorf("restricted mode requires at least one admin id")
		}
	default:
		return fmt.Errorf("unknown security mode %q", c.SecurityMode)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive")
	}
	if c.MsgChunkSize < 1 {
		return fmt.Errorf("message chunk size must be positive")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max file size must not be negative")
	}
	return nil
}

// ParseAdminIDs parses a comma-separated id list ("123, 456") as accepted
// on the CLI. Empty elements are skipped; a malformed element is an error.
func ParseAdminIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
