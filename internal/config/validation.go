package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Logger validation
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, "logger.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Logger.Format) {
	case "text", "json":
	default:
		errs = append(errs, "logger.format must be text or json")
	}

	// Files validation
	if c.Files.MaxFileSize < 1 {
		errs = append(errs, "files.max_file_size must be >= 1")
	}
	if c.Files.ScanPattern == "" {
		errs = append(errs, "files.scan_pattern must not be empty")
	} else if _, err := filepath.Match(c.Files.ScanPattern, ""); err != nil {
		errs = append(errs, fmt.Sprintf("files.scan_pattern is malformed: %v", err))
	}
	if c.Files.ReadmeName == "" {
		errs = append(errs, "files.readme_name must not be empty")
	}
	if strings.ContainsAny(c.Files.ReadmeName, `/\`) {
		errs = append(errs, "files.readme_name must be a bare file name")
	}
	if c.Files.ActiveTemplate == "" {
		errs = append(errs, "files.active_template must not be empty")
	}

	// UI validation
	if c.UI.ListWidth < 10 {
		errs = append(errs, "ui.list_width must be >= 10")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
