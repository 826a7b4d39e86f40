package configloader

import "github.com/yaklabco/gramlint/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true overrides; a config file cannot unset a flag
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Version != 0 {
		result.Version = override.Version
	}

	// Server
	if override.Server.Default != "" {
		result.Server.Default = override.Server.Default
	}
	if override.Server.LocalURL != "" {
		result.Server.LocalURL = override.Server.LocalURL
	}
	if override.Server.RemoteURL != "" {
		result.Server.RemoteURL = override.Server.RemoteURL
	}
	if override.Server.Timeout != 0 {
		result.Server.Timeout = override.Server.Timeout
	}
	if override.Server.JarPath != "" {
		result.Server.JarPath = override.Server.JarPath
	}
	if override.Server.Port != 0 {
		result.Server.Port = override.Server.Port
	}

	// Auth
	if override.Auth.Username != "" {
		result.Auth.Username = override.Auth.Username
	}
	if override.Auth.APIKey != "" {
		result.Auth.APIKey = override.Auth.APIKey
	}

	// Check
	if override.Check.Language != "" {
		result.Check.Language = override.Check.Language
	}
	if override.Check.Payload != "" {
		result.Check.Payload = override.Check.Payload
	}
	if override.Check.IgnoredScopes != nil {
		result.Check.IgnoredScopes = override.Check.IgnoredScopes
	}
	if override.Check.Extensions != nil {
		result.Check.Extensions = override.Check.Extensions
	}

	// Highlight
	if override.Highlight.Scope != "" {
		result.Highlight.Scope = override.Highlight.Scope
	}
	if override.Highlight.Display != "" {
		result.Highlight.Display = override.Highlight.Display
	}

	// Log
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	// Output
	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}

	// CLI-level options
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Watch {
		result.Watch = override.Watch
	}
	if override.NoIgnoredRules {
		result.NoIgnoredRules = override.NoIgnoredRules
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
