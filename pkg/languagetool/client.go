// Package languagetool provides an HTTP client for the LanguageTool
// grammar-checking API: text checking, the supported-language catalog,
// and personal-dictionary management.
package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultTimeout bounds a single check round-trip.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is the client identifier sent with every request.
const DefaultUserAgent = "gramlint"

// maxErrorBody caps how much of an error response body is retained.
const maxErrorBody = 4 * 1024

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "https://api.languagetool.org/v2".
	// Endpoint suffixes ("check", "languages", "words/add") are appended.
	BaseURL string

	// HTTPClient overrides the underlying client. When nil, a client with
	// Timeout set from the Timeout field is used.
	HTTPClient *http.Client

	// UserAgent identifies this client to the server. Defaults to
	// DefaultUserAgent. Sent both as an HTTP header and as the
	// "User-Agent" form field.
	UserAgent string

	// Username and APIKey enable premium endpoints. Both must be set for
	// either to be sent.
	Username string
	APIKey   string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client talks to one LanguageTool server.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	username  string
	apiKey    string
}

// New creates a Client for the given options.
// It validates the base URL up front so a malformed configuration fails
// here rather than on first use.
func New(opts Options) (*Client, error) {
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      httpClient,
		userAgent: userAgent,
		username:  opts.Username,
		apiKey:    opts.APIKey,
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Check submits text for checking and returns the server's matches.
// A reply with zero matches is a success with an empty slice; transport
// and status failures are classified for UserMessage.
func (c *Client) Check(ctx context.Context, req CheckRequest) ([]Match, error) {
	resp, err := c.CheckFull(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// CheckFull is Check with the full response, including the language the
// server resolved "auto" to.
func (c *Client) CheckFull(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	form := url.Values{}

	language := req.Language
	if language == "" {
		language = "auto"
	}
	form.Set("language", language)

	if req.Data != "" {
		form.Set("data", req.Data)
	} else {
		form.Set("text", req.Text)
	}

	form.Set("User-Agent", c.userAgent)

	if len(req.DisabledRules) > 0 {
		form.Set("disabledRules", strings.Join(req.DisabledRules, ","))
	}

	username, apiKey := c.credentials(req.Username, req.APIKey)
	if username != "" && apiKey != "" {
		form.Set("username", username)
		form.Set("apiKey", apiKey)
	}

	body, err := c.postForm(ctx, "check", form)
	if err != nil {
		return nil, err
	}

	var decoded CheckResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode check response: %w", err)
	}

	return &decoded, nil
}

// Languages fetches the supported-language catalog, sorted by name.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("languages"), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var languages []Language
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil, fmt.Errorf("decode languages response: %w", err)
	}

	sort.Slice(languages, func(i, j int) bool {
		return languages[i].Name < languages[j].Name
	})

	return languages, nil
}

// AddWord adds a word to the premium personal dictionary.
// Both credentials are required; the server's "added" flag is false when
// the word was already present.
func (c *Client) AddWord(ctx context.Context, word string) (bool, error) {
	if c.username == "" || c.apiKey == "" {
		return false, ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("word", word)
	form.Set("username", c.username)
	form.Set("apiKey", c.apiKey)

	body, err := c.postForm(ctx, "words/add", form)
	if err != nil {
		return false, err
	}

	var decoded struct {
		Added bool `json:"added"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return false, fmt.Errorf("decode words/add response: %w", err)
	}

	return decoded.Added, nil
}

// credentials resolves per-request overrides against the client defaults.
func (c *Client) credentials(username, apiKey string) (string, string) {
	if username != "" || apiKey != "" {
		return username, apiKey
	}
	return c.username, c.apiKey
}

func (c *Client) endpoint(suffix string) string {
	return c.baseURL + "/" + suffix
}

func (c *Client) postForm(ctx context.Context, suffix string, form url.Values) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint(suffix), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", c.userAgent)

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return body, nil
}
