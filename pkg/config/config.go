// Package config defines core configuration types for gramlint.
// These types are pure data structures with no external dependencies on config loaders.
package config

import (
	"fmt"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerKind selects which configured server a check talks to.
type ServerKind string

const (
	ServerLocal  ServerKind = "local"
	ServerRemote ServerKind = "remote"
)

// IsValid returns true if the server kind is valid.
func (s ServerKind) IsValid() bool {
	switch s {
	case ServerLocal, ServerRemote:
		return true
	default:
		return false
	}
}

// PayloadKind selects how buffer text is sent to the server. Older servers
// only understand the plain text field; newer ones accept annotated data
// that distinguishes prose from markup.
type PayloadKind string

const (
	PayloadData PayloadKind = "data"
	PayloadText PayloadKind = "text"
)

// IsValid returns true if the payload kind is valid.
func (p PayloadKind) IsValid() bool {
	switch p {
	case PayloadData, PayloadText:
		return true
	default:
		return false
	}
}

// DisplayMode controls where problem details are surfaced during
// interactive fixing.
type DisplayMode string

const (
	// DisplayPanel shows details in a dedicated output panel.
	DisplayPanel DisplayMode = "panel"

	// DisplayStatusbar shows a condensed summary in the status bar.
	DisplayStatusbar DisplayMode = "statusbar"
)

// IsValid returns true if the display mode is valid.
func (d DisplayMode) IsValid() bool {
	switch d {
	case DisplayPanel, DisplayStatusbar:
		return true
	default:
		return false
	}
}

// Duration wraps time.Duration for human-readable YAML ("60s", "2m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig describes the grammar servers a check may talk to.
type ServerConfig struct {
	// Default selects local or remote when no --server flag is given.
	Default ServerKind `mapstructure:"default" yaml:"default"`

	// LocalURL is the base URL of a locally running server.
	LocalURL string `mapstructure:"local_url" yaml:"local_url"`

	// RemoteURL is the base URL of the hosted service.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url"`

	// Timeout bounds every request to the server.
	Timeout Duration `mapstructure:"timeout" yaml:"timeout"`

	// JarPath locates languagetool-server.jar for `server start`.
	JarPath string `mapstructure:"jar_path" yaml:"jar_path"`

	// Port is the listening port used when launching a local server.
	Port int `mapstructure:"port" yaml:"port"`
}

// AuthConfig carries the premium-service credentials. Both fields must be
// set for them to be sent; a lone username or key is ignored.
type AuthConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
}

// Complete returns true when both credentials are present.
func (a AuthConfig) Complete() bool {
	return a.Username != "" && a.APIKey != ""
}

// CheckConfig controls what is sent for checking and what is filtered out.
type CheckConfig struct {
	// Language is the LanguageTool language code, "auto" for detection.
	Language string `mapstructure:"language" yaml:"language"`

	// Payload selects the text or data request field.
	Payload PayloadKind `mapstructure:"payload" yaml:"payload"`

	// IgnoredScopes are glob patterns; problems whose scope names match
	// any pattern are dropped.
	IgnoredScopes []string `mapstructure:"ignored_scopes" yaml:"ignored_scopes"`

	// Extensions are the file extensions batch checking picks up.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// HighlightConfig controls how problems are marked and presented.
type HighlightConfig struct {
	// Scope is the style class applied to problem regions.
	Scope string `mapstructure:"scope" yaml:"scope"`

	// Display selects the problem-details surface.
	Display DisplayMode `mapstructure:"display" yaml:"display"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// OutputFormat specifies the output format for check results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ColorMode controls ANSI color in output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is valid.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format OutputFormat `mapstructure:"format" yaml:"format"`
	Color  ColorMode    `mapstructure:"color" yaml:"color"`
}

// Config is the root configuration structure for gramlint.
type Config struct {
	// Version is the config schema version.
	Version int `mapstructure:"version" yaml:"version"`

	// Server describes the grammar servers.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Auth carries premium credentials.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`

	// Check controls request construction and problem filtering.
	Check CheckConfig `mapstructure:"check" yaml:"check"`

	// Highlight controls problem markers and the details surface.
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`

	// Log controls diagnostic logging.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Output controls result rendering.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Watch re-runs checks when watched files change.
	Watch bool `mapstructure:"-" yaml:"-"`

	// NoIgnoredRules bypasses the ignored-rule store for one run.
	NoIgnoredRules bool `mapstructure:"-" yaml:"-"`

	// Exclude contains glob patterns for files to skip.
	Exclude []string `mapstructure:"-" yaml:"-"`
}

// DefaultRemoteURL is the hosted LanguageTool API.
const DefaultRemoteURL = "https://api.languagetoolplus.com/v2"

// DefaultLocalPort is the port a launched local server listens on.
const DefaultLocalPort = 8081

// DefaultTimeout bounds check requests.
const DefaultTimeout = 60 * time.Second

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Default:   ServerRemote,
			LocalURL:  fmt.Sprintf("http://localhost:%d/v2", DefaultLocalPort),
			RemoteURL: DefaultRemoteURL,
			Timeout:   Duration(DefaultTimeout),
			Port:      DefaultLocalPort,
		},
		Check: CheckConfig{
			Language:   "auto",
			Payload:    PayloadData,
			Extensions: []string{".md", ".markdown", ".txt", ".text"},
		},
		Highlight: HighlightConfig{
			Scope:   "comment",
			Display: DisplayPanel,
		},
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// ServerURL resolves the base URL for the given kind. An empty kind uses
// the configured default.
func (c *Config) ServerURL(kind ServerKind) string {
	if kind == "" {
		kind = c.Server.Default
	}
	if kind == ServerLocal {
		return c.Server.LocalURL
	}
	return c.Server.RemoteURL
}

// ApplyServer interprets a --server style value: "local", "remote", or a
// base URL. A URL is routed through the remote slot for this process, so
// every component that resolves the default server reaches it.
func (c *Config) ApplyServer(value string) error {
	switch value {
	case "":
		return nil
	case string(ServerLocal):
		c.Server.Default = ServerLocal
	case string(ServerRemote):
		c.Server.Default = ServerRemote
	default:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid server %q: want local, remote, or a base URL", value)
		}
		c.Server.Default = ServerRemote
		c.Server.RemoteURL = value
	}
	return nil
}
