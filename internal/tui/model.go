// Package tui implements the interactive fix session for a single file: a
// Bubble Tea program that walks the problems LanguageTool reported, applies
// suggested corrections, and writes the result back.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gramlint/pkg/check"
	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/fsutil"
	"github.com/yaklabco/gramlint/pkg/problem"
	"github.com/yaklabco/gramlint/pkg/rulestore"
)

// Options configures a fix session.
type Options struct {
	// Path is the file being fixed, shown in the title and used for writes.
	Path string

	// Content is the file's content at session start.
	Content []byte

	// FileMode is used when writing the file back; zero means 0644.
	FileMode os.FileMode

	// Checker performs the server round trips.
	Checker *check.Checker

	// Store persists rule deactivation. May be nil, in which case
	// deactivated rules last only for the session.
	Store *rulestore.Store

	// Check configures each check run.
	Check check.Options

	// Backup writes a sidecar with the original content before the first
	// save (see fsutil.BackupSuffix).
	Backup bool

	// Preview disables writing entirely; the caller renders a diff from
	// Content and the final buffer instead.
	Preview bool
}

type sessionState int

const (
	stateChecking sessionState = iota
	stateReviewing
	statePicking
	stateConfirmQuit
)

type hostEventKind int

const (
	eventStatus hostEventKind = iota
	eventErrorText
	eventPanel
	eventHidePanel
	eventActivityStart
	eventActivityStop
)

type hostEvent struct {
	kind hostEventKind
	text string
}

type hostEventMsg hostEvent

type checkDoneMsg struct {
	sess *problem.Session
	err  error
}

// Model is the Bubble Tea model for one fix session. It doubles as the
// editor host: status messages land in the status bar, error messages in a
// modal overlay, panel text in the details area, and activity on the
// spinner. Host methods forward through a channel, so they are safe to call
// from the goroutine running the check.
type Model struct {
	path     string
	original []byte
	fileMode os.FileMode
	buf      *editor.MemBuffer
	checker  *check.Checker
	store    *rulestore.Store
	opts     check.Options
	backup   bool
	preview  bool

	events chan hostEvent

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	state      sessionState
	sess       *problem.Session
	current    problem.Problem
	hasCurrent bool

	pickChoices []string
	pickIndex   int

	status        string
	panelText     string
	panelOpen     bool
	errText       string
	activityLabel string
	busy          bool

	styles styles

	saved    bool
	quitting bool
	err      error
}

// NewModel creates a fix-session model over the given content. The first
// check starts when the program runs.
func NewModel(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	mode := opts.FileMode
	if mode == 0 {
		mode = 0o644
	}

	return &Model{
		path:     opts.Path,
		original: append([]byte(nil), opts.Content...),
		fileMode: mode,
		buf:      editor.NewMemBuffer(string(opts.Content)),
		checker:  opts.Checker,
		store:    opts.Store,
		opts:     opts.Check,
		backup:   opts.Backup,
		preview:  opts.Preview,
		events:   make(chan hostEvent, 32),
		spinner:  sp,
		state:    stateChecking,
		styles:   defaultStyles(),
	}
}

// Content returns the buffer's current content.
func (m *Model) Content() []byte {
	return []byte(m.buf.Content())
}

// Modified reports whether the buffer differs from the content the session
// started with. Saving does not reset this; it compares against the
// original file.
func (m *Model) Modified() bool {
	return m.buf.Content() != string(m.original)
}

// Saved reports whether the file was written at least once.
func (m *Model) Saved() bool {
	return m.saved
}

// Err returns the failure the session ended in, if any. A check or write
// error that a later successful run cleared is not reported.
func (m *Model) Err() error {
	return m.err
}

// StatusMessage implements editor.Host.
func (m *Model) StatusMessage(msg string) {
	m.post(hostEvent{kind: eventStatus, text: msg})
}

// ErrorMessage implements editor.Host.
func (m *Model) ErrorMessage(msg string) {
	m.post(hostEvent{kind: eventErrorText, text: msg})
}

// ShowPanel implements editor.Host.
func (m *Model) ShowPanel(text string) {
	m.post(hostEvent{kind: eventPanel, text: text})
}

// HidePanel implements editor.Host.
func (m *Model) HidePanel() {
	m.post(hostEvent{kind: eventHidePanel})
}

// Activity implements editor.Host.
func (m *Model) Activity(label string) (stop func()) {
	m.post(hostEvent{kind: eventActivityStart, text: label})
	return func() {
		m.post(hostEvent{kind: eventActivityStop})
	}
}

// post never blocks; a full queue drops the event.
func (m *Model) post(ev hostEvent) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m *Model) listenHost() tea.Cmd {
	return func() tea.Msg {
		return hostEventMsg(<-m.events)
	}
}

func (m *Model) runCheck() tea.Cmd {
	checker, buf, opts := m.checker, m.buf, m.opts
	host := editor.Host(m)
	return func() tea.Msg {
		sess, err := checker.Run(context.Background(), buf, host, opts)
		return checkDoneMsg{sess: sess, err: err}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenHost(), m.runCheck())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 10)
			m.ready = true
		}
		m.layout()
		m.refreshViewport()
		m.scrollToCurrent()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateChecking && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case hostEventMsg:
		m.applyHostEvent(hostEvent(msg))
		return m, m.listenHost()

	case checkDoneMsg:
		return m.finishCheck(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) applyHostEvent(ev hostEvent) {
	switch ev.kind {
	case eventStatus:
		m.status = ev.text
	case eventErrorText:
		m.errText = ev.text
	case eventPanel:
		m.panelText = ev.text
		m.panelOpen = true
		m.layout()
	case eventHidePanel:
		m.panelOpen = false
		m.layout()
	case eventActivityStart:
		m.busy = true
		m.activityLabel = ev.text
	case eventActivityStop:
		m.busy = false
	}
}

func (m *Model) finishCheck(msg checkDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.state = stateReviewing

	if msg.err != nil {
		m.err = msg.err
		m.sync()
		return m, nil
	}

	m.err = nil
	m.sess = msg.sess
	if p, ok := m.sess.First(); ok {
		m.current = p
		m.hasCurrent = true
		m.buf.Select(m.sess.Region(p))
	} else {
		m.hasCurrent = false
	}
	m.sync()
	m.scrollToCurrent()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// A visible error overlay swallows everything until dismissed.
	if m.errText != "" {
		switch key {
		case "q":
			m.errText = ""
			return m.quitRequested()
		case "esc", "enter":
			m.errText = ""
		}
		return m, nil
	}

	switch m.state {
	case stateChecking:
		if key == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case stateConfirmQuit:
		return m.handleConfirmKey(key)
	case statePicking:
		return m.handlePickKey(key)
	case stateReviewing:
	}

	switch key {
	case "n", "right":
		m.gotoNext()
	case "p", "left":
		m.gotoPrev()
	case "enter", "f":
		m.applyCurrent()
	case "i":
		m.ignoreCurrent()
	case "d":
		m.deactivateRule()
	case "u":
		m.undo()
	case "g":
		return m.startRecheck()
	case "w":
		m.save()
	case "q":
		return m.quitRequested()
	case "esc":
		m.panelOpen = false
		m.layout()
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "home":
		m.viewport.GotoTop()
	case "end":
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m *Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "w":
		m.save()
		if m.err != nil {
			m.state = stateReviewing
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "n":
		m.quitting = true
		return m, tea.Quit
	case "esc", "q":
		m.state = stateReviewing
	}
	return m, nil
}

func (m *Model) handlePickKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down", "tab":
		m.pickIndex = (m.pickIndex + 1) % len(m.pickChoices)
	case "k", "up":
		m.pickIndex = (m.pickIndex + len(m.pickChoices) - 1) % len(m.pickChoices)
	case "enter":
		m.state = stateReviewing
		m.applyReplacement(m.pickChoices[m.pickIndex])
	case "esc":
		m.state = stateReviewing
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.pickChoices) {
				m.state = stateReviewing
				m.applyReplacement(m.pickChoices[idx])
			}
		}
	}
	return m, nil
}

// handleMouse selects the problem under a left click. Other mouse events
// go to the viewport, which handles wheel scrolling.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateReviewing || m.errText != "" {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if offset, ok := m.offsetAt(msg.X, msg.Y); ok && m.sess != nil {
			if p, ok := m.sess.At(offset); ok {
				m.setCurrent(p)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// offsetAt maps a terminal cell to a byte offset in the buffer. The
// viewport renders one buffer line per row without wrapping, so the row
// picks the line and the column counts runes into it.
func (m *Model) offsetAt(x, y int) (int, bool) {
	if !m.ready {
		return 0, false
	}
	row := y - headerHeight
	if row < 0 || row >= m.viewport.Height {
		return 0, false
	}

	lines := strings.Split(m.buf.Content(), "\n")
	lineIdx := m.viewport.YOffset + row
	if lineIdx >= len(lines) {
		return 0, false
	}

	offset := 0
	for i := 0; i < lineIdx; i++ {
		offset += len(lines[i]) + 1
	}
	col := 0
	for i := range lines[lineIdx] {
		if col == x {
			return offset + i, true
		}
		col++
	}
	return 0, false
}

func (m *Model) gotoNext() {
	if m.sess == nil {
		return
	}
	p, ok := m.sess.Next(m.buf.Selection().Start)
	if !ok {
		m.noFurtherProblems()
		return
	}
	m.setCurrent(p)
}

func (m *Model) gotoPrev() {
	if m.sess == nil {
		return
	}
	p, ok := m.sess.Prev(m.buf.Selection().Start)
	if !ok {
		m.noFurtherProblems()
		return
	}
	m.setCurrent(p)
}

func (m *Model) noFurtherProblems() {
	m.hasCurrent = false
	m.status = problem.NoMoreMessage
	m.panelOpen = false
	m.sync()
}

func (m *Model) setCurrent(p problem.Problem) {
	m.current = p
	m.hasCurrent = true
	check.SelectProblem(m.buf, m.sess, m, m.opts.Display, p)
	m.sync()
	m.scrollToCurrent()
}

// applyCurrent fixes the selected problem. With several replacements the
// picker opens; with none the problem is dismissed instead, matching a fix
// request on something that offers nothing to apply.
func (m *Model) applyCurrent() {
	if m.sess == nil || !m.hasCurrent {
		return
	}
	switch len(m.current.Replacements) {
	case 0:
		m.ignoreCurrent()
	case 1:
		m.applyReplacement(m.current.Replacements[0])
	default:
		m.pickChoices = m.current.Replacements
		m.pickIndex = 0
		m.state = statePicking
	}
}

func (m *Model) applyReplacement(text string) {
	m.sess.Apply(m.current, text)
	m.sync()
	m.gotoNext()
}

func (m *Model) ignoreCurrent() {
	if m.sess == nil || !m.hasCurrent {
		return
	}
	m.sess.Ignore(m.current)
	m.sync()
	m.gotoNext()
}

func (m *Model) deactivateRule() {
	if m.sess == nil || !m.hasCurrent {
		m.status = "select a problem to deactivate its rule"
		return
	}
	ruleID := m.current.RuleID
	if ruleID == "" {
		m.status = "the selected problem carries no rule"
		return
	}
	if m.store != nil {
		entry := rulestore.Entry{ID: ruleID, Description: m.current.Message}
		if err := m.store.Add(context.Background(), entry); err != nil {
			m.errText = fmt.Sprintf("could not save the ignored rule: %v", err)
			return
		}
	}
	m.sess.IgnoreRule(ruleID)
	m.sync()
	m.gotoNext()
	m.status = fmt.Sprintf("deactivated rule %s", ruleID)
}

func (m *Model) undo() {
	if !m.buf.Undo() {
		m.status = "nothing to undo"
		return
	}
	m.sync()
}

func (m *Model) startRecheck() (tea.Model, tea.Cmd) {
	m.state = stateChecking
	m.hasCurrent = false
	m.panelOpen = false
	m.errText = ""
	// Collapse the selection so the whole buffer is checked again, not
	// just the last selected problem region.
	m.buf.Select(editor.Region{})
	m.layout()
	return m, tea.Batch(m.spinner.Tick, m.runCheck())
}

func (m *Model) save() {
	if m.preview {
		m.status = "preview only; no file written"
		return
	}

	ctx := context.Background()
	if m.backup {
		if _, err := fsutil.WriteBackup(ctx, m.path, m.original, m.fileMode); err != nil {
			m.err = err
			m.errText = fmt.Sprintf("could not write backup: %v", err)
			return
		}
	}

	if err := fsutil.WriteAtomic(ctx, m.path, []byte(m.buf.Content()), m.fileMode); err != nil {
		m.err = err
		m.errText = fmt.Sprintf("could not write %s: %v", m.path, err)
		return
	}

	m.err = nil
	m.saved = true
	m.buf.MarkClean()
	m.status = fmt.Sprintf("wrote %s", m.path)
}

func (m *Model) quitRequested() (tea.Model, tea.Cmd) {
	if m.buf.Dirty() && !m.preview {
		m.state = stateConfirmQuit
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// sync re-evaluates solved state and redraws the buffer view.
func (m *Model) sync() {
	if m.sess != nil {
		m.sess.Refresh()
	}
	m.layout()
	m.refreshViewport()
}
