package configloader

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gramlint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "server.local_url").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// maxPort is the highest valid TCP port.
const maxPort = 65535

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateServer(cfg, result)
	validateCheck(cfg, result)
	validateHighlight(cfg, result)
	validateOutput(cfg, result)

	if cfg.Log.Level != "" && !knownLogLevels[cfg.Log.Level] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   cfg.Log.Level,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.Log.Level),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// A lone credential is silently ignored by the transport; surface that.
	if (cfg.Auth.Username == "") != (cfg.Auth.APIKey == "") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "auth",
			Message: "username and api_key must both be set to take effect; the lone credential is ignored",
		})
	}

	validateGlobs(cfg.Exclude, "exclude", result)
	validateGlobs(cfg.Check.IgnoredScopes, "check.ignored_scopes", result)

	return result
}

func validateServer(cfg *config.Config, result *ValidationResult) {
	if cfg.Server.Default != "" && !cfg.Server.Default.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.default",
			Value:   cfg.Server.Default,
			Message: fmt.Sprintf("invalid server %q; must be one of: local, remote", cfg.Server.Default),
		})
	}

	validateURL(cfg.Server.LocalURL, "server.local_url", result)
	validateURL(cfg.Server.RemoteURL, "server.remote_url", result)

	if cfg.Server.Timeout < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.timeout",
			Value:   cfg.Server.Timeout,
			Message: "timeout must be positive",
		})
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > maxPort {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Value:   cfg.Server.Port,
			Message: fmt.Sprintf("port must be between 1 and %d", maxPort),
		})
	}
}

func validateCheck(cfg *config.Config, result *ValidationResult) {
	if cfg.Check.Payload != "" && !cfg.Check.Payload.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "check.payload",
			Value:   cfg.Check.Payload,
			Message: fmt.Sprintf("invalid payload %q; must be one of: data, text", cfg.Check.Payload),
		})
	}

	for i, ext := range cfg.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("check.extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}
}

func validateHighlight(cfg *config.Config, result *ValidationResult) {
	if cfg.Highlight.Display != "" && !cfg.Highlight.Display.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "highlight.display",
			Value:   cfg.Highlight.Display,
			Message: fmt.Sprintf("invalid display mode %q; must be one of: panel, statusbar", cfg.Highlight.Display),
		})
	}
}

func validateOutput(cfg *config.Config, result *ValidationResult) {
	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   cfg.Output.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, summary", cfg.Output.Format),
		})
	}

	if cfg.Output.Color != "" && !cfg.Output.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.color",
			Value:   cfg.Output.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Output.Color),
		})
	}
}

// validateURL checks that a configured URL parses and has a scheme and host.
func validateURL(value, field string, result *ValidationResult) {
	if value == "" {
		return
	}

	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("invalid URL %q", value),
		})
	}
}

// validateGlobs checks that patterns are valid globs. Scope patterns use
// slash-separated path.Match syntax; file patterns use filepath.Match.
func validateGlobs(patterns []string, field string, result *ValidationResult) {
	for i, pattern := range patterns {
		var err error
		if field == "exclude" {
			_, err = filepath.Match(pattern, "")
		} else {
			_, err = path.Match(pattern, "")
		}
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
