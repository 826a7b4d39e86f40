package configloader

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/yaklabco/gramlint/pkg/config"
)

// envVarPrefix is the prefix for all gramlint environment variables.
const envVarPrefix = "GRAMLINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeDuration
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config
// fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SERVER":    {field: "server", typ: envTypeString},
	"LANGUAGE":  {field: "check.language", typ: envTypeString},
	"USERNAME":  {field: "auth.username", typ: envTypeString},
	"API_KEY":   {field: "auth.api_key", typ: envTypeString},
	"PAYLOAD":   {field: "check.payload", typ: envTypeString},
	"FORMAT":    {field: "output.format", typ: envTypeString},
	"COLOR":     {field: "output.color", typ: envTypeString},
	"LOG_LEVEL": {field: "log.level", typ: envTypeString},
	"JAR_PATH":  {field: "server.jar_path", typ: envTypeString},
	"TIMEOUT":   {field: "server.timeout", typ: envTypeDuration},
	"JOBS":      {field: "jobs", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GRAMLINT_ (e.g., GRAMLINT_SERVER).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		if err := setStringField(cfg, mapping.field, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
		return nil
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "server":
		return cfg.ApplyServer(value)
	case "check.language":
		cfg.Check.Language = value
	case "check.payload":
		cfg.Check.Payload = config.PayloadKind(value)
	case "auth.username":
		cfg.Auth.Username = value
	case "auth.api_key":
		cfg.Auth.APIKey = value
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.color":
		cfg.Output.Color = config.ColorMode(value)
	case "log.level":
		cfg.Log.Level = value
	case "server.jar_path":
		cfg.Server.JarPath = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setDurationField sets a duration field on the config by field path.
func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "server.timeout":
		cfg.Server.Timeout = config.Duration(value)
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their
// descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GRAMLINT_SERVER":    "Server selection: local, remote, or a base URL",
		"GRAMLINT_LANGUAGE":  "Language code to check against (auto = detect)",
		"GRAMLINT_USERNAME":  "Premium account username",
		"GRAMLINT_API_KEY":   "Premium account API key",
		"GRAMLINT_PAYLOAD":   "Request payload: data or text",
		"GRAMLINT_FORMAT":    "Output format: text, json, or summary",
		"GRAMLINT_COLOR":     "Color mode: auto, always, or never",
		"GRAMLINT_LOG_LEVEL": "Log level: debug, info, warn, or error",
		"GRAMLINT_JAR_PATH":  "Path to languagetool-server.jar",
		"GRAMLINT_TIMEOUT":   "Request timeout (e.g. 60s)",
		"GRAMLINT_JOBS":      "Number of parallel workers (0 = auto)",
	}
}
