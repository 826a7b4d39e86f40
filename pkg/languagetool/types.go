package languagetool

// CheckRequest describes one check call against the server.
type CheckRequest struct {
	// Language is the LanguageTool language code (e.g. "en-US", "auto").
	Language string

	// Text is the raw text payload, sent as the "text" form field.
	Text string

	// Data is a pre-encoded annotation document (see pkg/annotate), sent as
	// the "data" form field. When both Text and Data are set, Data wins.
	Data string

	// DisabledRules are rule IDs the server should not report.
	// They are comma-joined into the "disabledRules" field; an empty list
	// omits the field entirely.
	DisabledRules []string

	// Username and APIKey override the client credentials for this request.
	// Both must be non-empty to be sent; a lone value is never transmitted.
	Username string
	APIKey   string
}

// CheckResponse is the server's reply to a check call.
type CheckResponse struct {
	Software Software `json:"software"`
	Language RespLang `json:"language"`
	Matches  []Match  `json:"matches"`
}

// Software identifies the server implementation.
type Software struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RespLang is the language the server actually checked against.
type RespLang struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Match is a single issue the server reported for a span of submitted text.
type Match struct {
	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// ShortMessage is a terse variant, often empty.
	ShortMessage string `json:"shortMessage"`

	// Offset is the byte offset of the issue within the submitted text.
	Offset int `json:"offset"`

	// Length is the byte length of the flagged span.
	Length int `json:"length"`

	// Replacements are the suggested corrections, in server order.
	Replacements []Replacement `json:"replacements"`

	// Rule identifies the rule that produced this match.
	Rule Rule `json:"rule"`
}

// Replacement is one suggested correction.
type Replacement struct {
	Value string `json:"value"`
}

// Rule describes the server-side rule behind a match.
type Rule struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	IssueType   string    `json:"issueType"`
	URLs        []RuleURL `json:"urls"`
	Category    Category  `json:"category"`
}

// RuleURL is a reference link explaining a rule.
type RuleURL struct {
	Value string `json:"value"`
}

// Category groups related rules (e.g. "Possible Typo", "Grammar").
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Language is one entry of the server's supported-language catalog.
type Language struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	LongCode string `json:"longCode"`
}
