package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gramlint/pkg/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, SublimeSettingsName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestConvertSublimeSettings(t *testing.T) {
	t.Parallel()

	// Sublime settings files carry comments and trailing commas
	settingsContent := `{
	// URL of the remote LanguageTool server
	"languagetool_server_remote": "https://api.languagetoolplus.com/v2/check",
	"languagetool_server_local": "http://localhost:8081/v2/check",
	"default_server": "local",
	"selected_language": "en-US",
	"ignored-scopes": [
		"comment.line",
		"markup.raw",
	],
	"highlight-scope": "string",
	"display_mode": "statusbar",
	"username": "someone@example.com",
	"apiKey": "abc123",
	"languagetool_jar": "/opt/languagetool/languagetool-server.jar",
}`
	path := writeSettings(t, settingsContent)

	result, err := ConvertSublimeSettings(path)
	if err != nil {
		t.Fatalf("ConvertSublimeSettings() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("result.Config is nil")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	cfg := result.Config

	// The /check endpoint suffix is stripped from server URLs
	if cfg.Server.RemoteURL != "https://api.languagetoolplus.com/v2" {
		t.Errorf("remote URL = %q", cfg.Server.RemoteURL)
	}
	if cfg.Server.LocalURL != "http://localhost:8081/v2" {
		t.Errorf("local URL = %q", cfg.Server.LocalURL)
	}
	if cfg.Server.Default != config.ServerLocal {
		t.Errorf("default server = %q", cfg.Server.Default)
	}
	if cfg.Check.Language != "en-US" {
		t.Errorf("language = %q", cfg.Check.Language)
	}
	if len(cfg.Check.IgnoredScopes) != 2 || cfg.Check.IgnoredScopes[0] != "comment.line" {
		t.Errorf("ignored scopes = %v", cfg.Check.IgnoredScopes)
	}
	if cfg.Highlight.Scope != "string" {
		t.Errorf("highlight scope = %q", cfg.Highlight.Scope)
	}
	if cfg.Highlight.Display != config.DisplayStatusbar {
		t.Errorf("display mode = %q", cfg.Highlight.Display)
	}
	if cfg.Auth.Username != "someone@example.com" {
		t.Errorf("username = %q", cfg.Auth.Username)
	}
	if cfg.Auth.APIKey != "abc123" {
		t.Errorf("api key = %q", cfg.Auth.APIKey)
	}
	if cfg.Server.JarPath != "/opt/languagetool/languagetool-server.jar" {
		t.Errorf("jar path = %q", cfg.Server.JarPath)
	}
}

func TestConvertSublimeSettings_UnknownKey(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `{"prompt_on_startup": true}`)

	result, err := ConvertSublimeSettings(path)
	if err != nil {
		t.Fatalf("ConvertSublimeSettings() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "unknown setting") && strings.Contains(w, "prompt_on_startup") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected unknown setting warning, got %v", result.Warnings)
	}
}

func TestConvertSublimeSettings_InvalidEnums(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `{
		"default_server": "cloud",
		"display_mode": "popup"
	}`)

	result, err := ConvertSublimeSettings(path)
	if err != nil {
		t.Fatalf("ConvertSublimeSettings() error = %v", err)
	}

	// Invalid values warn and keep the defaults
	if result.Config.Server.Default != config.ServerRemote {
		t.Errorf("expected default server kept, got %q", result.Config.Server.Default)
	}
	if result.Config.Highlight.Display != config.DisplayPanel {
		t.Errorf("expected default display kept, got %q", result.Config.Highlight.Display)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestConvertSublimeSettings_WrongTypes(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `{
		"selected_language": 42,
		"ignored-scopes": "comment"
	}`)

	result, err := ConvertSublimeSettings(path)
	if err != nil {
		t.Fatalf("ConvertSublimeSettings() error = %v", err)
	}

	if result.Config.Check.Language != "auto" {
		t.Errorf("expected default language kept, got %q", result.Config.Check.Language)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestConvertSublimeSettings_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ConvertSublimeSettings(filepath.Join(t.TempDir(), "nope.sublime-settings"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConvertSublimeSettings_Malformed(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `{"selected_language": `)

	_, err := ConvertSublimeSettings(path)
	if err == nil {
		t.Fatal("expected error for malformed settings")
	}
	if !strings.Contains(err.Error(), "parse settings") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestTrimCheckEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"https://languagetool.org/api/v2/check", "https://languagetool.org/api/v2"},
		{"http://localhost:8081/v2/check/", "http://localhost:8081/v2"},
		{"http://localhost:8081/v2", "http://localhost:8081/v2"},
		{"http://localhost:8081/v2/", "http://localhost:8081/v2"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := trimCheckEndpoint(tt.input); got != tt.want {
			t.Errorf("trimCheckEndpoint(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateMigrationHeader(t *testing.T) {
	t.Parallel()

	header := GenerateMigrationHeader("/home/user/LanguageTool.sublime-settings")
	if !strings.Contains(header, "# gramlint configuration") {
		t.Errorf("header missing title: %q", header)
	}
	if !strings.Contains(header, "/home/user/LanguageTool.sublime-settings") {
		t.Errorf("header missing source path: %q", header)
	}
}
