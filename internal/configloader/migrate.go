package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/yaklabco/gramlint/pkg/config"
)

// MigrationResult contains the result of converting a Sublime settings file.
type MigrationResult struct {
	// Config is the converted gramlint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original settings file.
	SourcePath string
}

// ConvertSublimeSettings converts a LanguageTool.sublime-settings file to
// gramlint format. Sublime settings are JSON with comments and trailing
// commas, so the content is standardized before decoding.
func ConvertSublimeSettings(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	standardized, err := hujson.Standardize(content)
	if err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	cfg := config.NewConfig()
	for key, value := range raw {
		convertSetting(cfg, key, value, result)
	}

	result.Config = cfg
	return result, nil
}

// convertSetting maps one plugin setting onto the configuration.
func convertSetting(cfg *config.Config, key string, value any, result *MigrationResult) {
	switch key {
	case "languagetool_server_local":
		if s, ok := asString(value, key, result); ok {
			cfg.Server.LocalURL = trimCheckEndpoint(s)
		}
	case "languagetool_server_remote":
		if s, ok := asString(value, key, result); ok {
			cfg.Server.RemoteURL = trimCheckEndpoint(s)
		}
	case "default_server":
		s, ok := asString(value, key, result)
		if !ok {
			return
		}
		kind := config.ServerKind(s)
		if !kind.IsValid() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("default_server %q is not local or remote; keeping %q", s, cfg.Server.Default))
			return
		}
		cfg.Server.Default = kind
	case "selected_language":
		if s, ok := asString(value, key, result); ok && s != "" {
			cfg.Check.Language = s
		}
	case "ignored-scopes":
		if scopes, ok := asStringSlice(value, key, result); ok {
			cfg.Check.IgnoredScopes = scopes
		}
	case "highlight-scope":
		if s, ok := asString(value, key, result); ok && s != "" {
			cfg.Highlight.Scope = s
		}
	case "display_mode":
		s, ok := asString(value, key, result)
		if !ok {
			return
		}
		mode := config.DisplayMode(s)
		if !mode.IsValid() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("display_mode %q is not panel or statusbar; keeping %q", s, cfg.Highlight.Display))
			return
		}
		cfg.Highlight.Display = mode
	case "username":
		if s, ok := asString(value, key, result); ok {
			cfg.Auth.Username = s
		}
	case "apiKey":
		if s, ok := asString(value, key, result); ok {
			cfg.Auth.APIKey = s
		}
	case "languagetool_jar":
		if s, ok := asString(value, key, result); ok {
			cfg.Server.JarPath = s
		}
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown setting %q; skipping", key))
	}
}

// trimCheckEndpoint strips the /check endpoint the plugin appended to its
// server URLs, leaving the API base URL the client expects.
func trimCheckEndpoint(u string) string {
	trimmed := strings.TrimRight(u, "/")
	return strings.TrimSuffix(trimmed, "/check")
}

// asString extracts a string value, warning on type mismatches.
func asString(value any, key string, result *MigrationResult) (string, bool) {
	s, ok := value.(string)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("setting %q should be a string; skipping", key))
		return "", false
	}
	return s, true
}

// asStringSlice extracts a list of strings, warning on type mismatches.
func asStringSlice(value any, key string, result *MigrationResult) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("setting %q should be a list of strings; skipping", key))
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("setting %q should be a list of strings; skipping", key))
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gramlint configuration
# Migrated from: %s
# See: https://github.com/yaklabco/gramlint
`, sourcePath)
}
