package config

// GenerateTemplate creates a commented configuration file template for
// `gramlint init`.
func GenerateTemplate() []byte {
	return []byte(`# gramlint configuration
# See: https://github.com/yaklabco/gramlint

version: 1

server:
  # Which server to use when no --server flag is given: local or remote
  default: remote

  # Base URL of a locally running LanguageTool server
  local_url: http://localhost:8081/v2

  # Base URL of the hosted service
  remote_url: https://api.languagetoolplus.com/v2

  # Request timeout
  timeout: 60s

  # Path to languagetool-server.jar for "gramlint server start"
  # jar_path: /opt/languagetool/languagetool-server.jar

  # Listening port for a launched local server
  port: 8081

# Premium credentials; both must be set to take effect
# auth:
#   username: you@example.com
#   api_key: ...

check:
  # LanguageTool language code, or "auto" for detection
  language: auto

  # Request field for buffer text: "data" (annotated, newer servers)
  # or "text" (plain, older servers)
  payload: data

  # Scope patterns whose problems are dropped (glob syntax)
  # ignored_scopes:
  #   - "markup.raw*"
  #   - "markup.other*"

  # File extensions batch checking picks up
  extensions: [.md, .markdown, .txt, .text]

highlight:
  # Style class applied to problem regions
  scope: comment

  # Where problem details appear during interactive fixing:
  # panel or statusbar
  display: panel

log:
  # debug, info, warn, or error
  level: info

output:
  # text, json, or summary
  format: text

  # auto, always, or never
  color: auto
`)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gramlint configuration
# See: https://github.com/yaklabco/gramlint`
}
