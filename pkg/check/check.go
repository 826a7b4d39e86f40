// Package check orchestrates a single buffer check: payload construction,
// the server round trip, and problem registration.
package check

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/annotate"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/languagetool"
	"github.com/yaklabco/gramlint/pkg/problem"
	"github.com/yaklabco/gramlint/pkg/rulestore"
)

// CleanMessage is shown when a check finds nothing to fix.
const CleanMessage = "no language problems were found :-)"

// ActivityLabel names the busy indicator shown during the server call.
const ActivityLabel = "LanguageTool"

// Options are per-run settings, resolved from configuration with any
// command-level overrides already applied.
type Options struct {
	// Language is the LanguageTool language code; empty means "auto".
	Language string

	// Payload selects the data or text request field. Annotated data is
	// only sent for Markdown buffers; plain text is sent otherwise.
	Payload config.PayloadKind

	// Format is the buffer's detected format.
	Format annotate.Format

	// IgnoredScopes are glob patterns filtering out problems by scope.
	IgnoredScopes []string

	// HighlightScope styles the problem markers.
	HighlightScope string

	// Display selects where problem details are presented.
	Display config.DisplayMode

	// NoIgnoredRules skips the ignored-rule store for this run.
	NoIgnoredRules bool
}

// scopeSetter is implemented by buffers that accept the scope
// classification derived from payload chunking.
type scopeSetter interface {
	SetScopes(base string, spans []editor.ScopeSpan)
}

// Checker runs checks against one server and tracks the resulting session
// per buffer. A new check on a buffer supersedes that buffer's previous
// session. Concurrent checks on distinct buffers are safe; concurrent
// checks on the same buffer race on the session and must be serialized by
// the caller.
type Checker struct {
	client *languagetool.Client
	store  *rulestore.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions map[editor.Buffer]*problem.Session
}

// New creates a Checker. The store may be nil, in which case no rules are
// disabled. A nil logger falls back to the default.
func New(client *languagetool.Client, store *rulestore.Store, logger *log.Logger) *Checker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Checker{
		client:   client,
		store:    store,
		logger:   logger,
		sessions: make(map[editor.Buffer]*problem.Session),
	}
}

// Session returns the buffer's current session, if a check has run.
func (c *Checker) Session(buf editor.Buffer) (*problem.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[buf]
	return s, ok
}

// Run checks the buffer's selection, or the whole buffer when the selection
// is empty, and registers the reported problems as a new session.
//
// Transport failures are surfaced on the host as a user-facing message and
// returned; the caller sees no session. A clean result posts CleanMessage;
// otherwise the selection moves to the first problem and its details are
// presented per the display mode.
func (c *Checker) Run(ctx context.Context, buf editor.Buffer, host editor.Host, opts Options) (*problem.Session, error) {
	region := buf.Selection()
	if region.IsEmpty() {
		region = editor.Region{Start: 0, End: buf.Len()}
	}
	content := buf.Text(region)

	language := opts.Language
	if language == "" {
		language = "auto"
	}

	req := languagetool.CheckRequest{Language: language}

	annotation, spans := opts.Format.Build([]byte(content))
	if opts.Payload != config.PayloadText && opts.Format == annotate.FormatMarkdown {
		data, err := annotation.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode annotation: %w", err)
		}
		req.Data = data
	} else {
		req.Text = content
	}

	if setter, ok := buf.(scopeSetter); ok {
		setter.SetScopes(opts.Format.BaseScope(), shiftSpans(spans, region.Start))
	}

	if !opts.NoIgnoredRules && c.store != nil {
		entries, err := c.store.Load(ctx)
		if err != nil {
			host.ShowPanel(fmt.Sprintf("could not read ignored rules: %v", err))
			return nil, fmt.Errorf("load ignored rules: %w", err)
		}
		req.DisabledRules = rulestore.IDs(entries)
	}

	c.mu.Lock()
	if prev, ok := c.sessions[buf]; ok {
		prev.Clear()
		delete(c.sessions, buf)
	}
	c.mu.Unlock()

	sinceRevision := buf.Revision()
	started := time.Now()

	stop := host.Activity(ActivityLabel)
	resp, err := c.client.CheckFull(ctx, req)
	stop()

	if err != nil {
		host.ErrorMessage(languagetool.UserMessage(err))
		return nil, fmt.Errorf("check text: %w", err)
	}

	checkedLanguage := resp.Language.Code
	if checkedLanguage == "" {
		checkedLanguage = language
	}

	c.logger.Debug("checked text",
		logging.FieldLanguage, checkedLanguage,
		logging.FieldCount, len(resp.Matches),
		logging.FieldLatency, time.Since(started))

	sess := problem.NewSession(buf, problem.SessionOptions{
		Matches:        resp.Matches,
		CheckedRegion:  region,
		SinceRevision:  sinceRevision,
		IgnoredScopes:  opts.IgnoredScopes,
		HighlightScope: opts.HighlightScope,
		Language:       checkedLanguage,
	})

	c.mu.Lock()
	c.sessions[buf] = sess
	c.mu.Unlock()

	if p, ok := sess.First(); ok {
		SelectProblem(buf, sess, host, opts.Display, p)
	} else {
		host.StatusMessage(CleanMessage)
	}

	return sess, nil
}

// SelectProblem moves the selection onto the problem and presents its
// details.
func SelectProblem(buf editor.Buffer, sess *problem.Session, host editor.Host, mode config.DisplayMode, p problem.Problem) {
	buf.Select(sess.Region(p))
	Present(host, mode, p)
}

// Present routes problem details to the panel or the status bar.
func Present(host editor.Host, mode config.DisplayMode, p problem.Problem) {
	if mode == config.DisplayStatusbar {
		host.StatusMessage(Summarize(p))
		return
	}
	host.ShowPanel(Describe(p))
}

// Describe renders the detail-panel text for a problem.
func Describe(p problem.Problem) string {
	var b strings.Builder
	b.WriteString(p.Message)
	if len(p.Replacements) > 0 {
		b.WriteString("\n\nSuggestion(s): ")
		b.WriteString(strings.Join(p.Replacements, ", "))
	}
	if p.RuleID != "" {
		b.WriteString("\n\nRule: ")
		b.WriteString(p.RuleID)
	}
	if len(p.URLs) > 0 {
		b.WriteString("\n\nMore Info: ")
		b.WriteString(strings.Join(p.URLs, "\n"))
	}
	return b.String()
}

// Summarize renders the one-line status-bar form of the details.
func Summarize(p problem.Problem) string {
	if len(p.Replacements) > 0 {
		return fmt.Sprintf("%s (%s)", p.Message, strings.Join(p.Replacements, ", "))
	}
	return p.Message
}

func shiftSpans(spans []editor.ScopeSpan, delta int) []editor.ScopeSpan {
	if delta == 0 {
		return spans
	}
	shifted := make([]editor.ScopeSpan, len(spans))
	for i, span := range spans {
		span.Region.Start += delta
		span.Region.End += delta
		shifted[i] = span
	}
	return shifted
}
