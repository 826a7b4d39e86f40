package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/fsutil"
	"github.com/yaklabco/gramlint/pkg/languagetool"
	"github.com/yaklabco/gramlint/pkg/problem"
	"github.com/yaklabco/gramlint/pkg/rulestore"
)

func testMatch(offset, length int, replacements ...string) languagetool.Match {
	reps := make([]languagetool.Replacement, 0, len(replacements))
	for _, r := range replacements {
		reps = append(reps, languagetool.Replacement{Value: r})
	}
	return languagetool.Match{
		Message:      "Possible spelling mistake found.",
		Offset:       offset,
		Length:       length,
		Replacements: reps,
		Rule: languagetool.Rule{
			ID:       "MORFOLOGIK_RULE_EN_US",
			Category: languagetool.Category{ID: "TYPOS", Name: "Possible Typo"},
		},
	}
}

// readyModel builds a sized model whose first check already completed with
// the given matches.
func readyModel(t *testing.T, opts Options, matches ...languagetool.Match) *Model {
	t.Helper()

	if opts.Path == "" {
		opts.Path = filepath.Join(t.TempDir(), "draft.md")
	}
	m := NewModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	sess := problem.NewSession(m.buf, problem.SessionOptions{
		Matches:        matches,
		CheckedRegion:  editor.Region{Start: 0, End: m.buf.Len()},
		SinceRevision:  m.buf.Revision(),
		HighlightScope: "comment",
	})
	m.Update(checkDoneMsg{sess: sess})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func currentStart(t *testing.T, m *Model) int {
	t.Helper()
	require.True(t, m.hasCurrent, "expected a selected problem")
	return m.sess.Region(m.current).Start
}

func TestModelSelectsFirstProblemAfterCheck(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	assert.Equal(t, stateReviewing, m.state)
	assert.Equal(t, 0, currentStart(t, m))
	assert.NoError(t, m.Err())
}

func TestModelNavigationStopsAtTheEnd(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	press(m, "n")
	assert.Equal(t, 15, currentStart(t, m))

	press(m, "n")
	assert.False(t, m.hasCurrent, "navigation does not wrap")
	assert.Equal(t, problem.NoMoreMessage, m.status)
	assert.False(t, m.panelOpen)

	press(m, "p")
	assert.Equal(t, 0, currentStart(t, m))
}

func TestModelClickSelectsProblemUnderCell(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	require.Equal(t, 0, currentStart(t, m))

	click(m, 16, headerHeight)
	assert.Equal(t, 15, currentStart(t, m))

	click(m, 1, headerHeight)
	assert.Equal(t, 0, currentStart(t, m))

	click(m, 15, headerHeight)
	assert.Equal(t, 0, currentStart(t, m), "a click on the start boundary selects nothing")

	click(m, 5, headerHeight+10)
	assert.Equal(t, 0, currentStart(t, m), "clicks outside the text are ignored")
}

func TestModelApplySingleReplacement(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	press(m, "enter")

	assert.Equal(t, "The quick fox. Teh slow dog.", string(m.Content()))
	assert.True(t, m.Modified())
	assert.Equal(t, 15, currentStart(t, m), "selection advances to the next problem")
}

func TestModelPickerChoosesAmongReplacements(t *testing.T) {
	t.Parallel()

	t.Run("cursor selection", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The", "This"))

		press(m, "enter")
		require.Equal(t, statePicking, m.state)

		press(m, "j", "enter")
		assert.Equal(t, stateReviewing, m.state)
		assert.Equal(t, "This quick fox.", string(m.Content()))
	})

	t.Run("digit shortcut", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The", "This"))

		press(m, "f", "2")
		assert.Equal(t, "This quick fox.", string(m.Content()))
	})

	t.Run("escape keeps the buffer", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The", "This"))

		press(m, "enter", "esc")
		assert.Equal(t, stateReviewing, m.state)
		assert.Equal(t, "Teh quick fox.", string(m.Content()))
		assert.False(t, m.Modified())
	})
}

func TestModelApplyWithoutReplacementIgnores(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
		testMatch(0, 3))

	press(m, "enter")

	assert.Equal(t, "Teh quick fox.", string(m.Content()))
	assert.Empty(t, m.sess.Unsolved())
	assert.Equal(t, problem.NoMoreMessage, m.status)
}

func TestModelIgnoreClearsEqualProblems(t *testing.T) {
	t.Parallel()

	// The same typo twice: one ignore dismisses both occurrences.
	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	press(m, "i")

	assert.Equal(t, "Teh quick fox. Teh slow dog.", string(m.Content()))
	assert.Empty(t, m.sess.Unsolved())
	assert.Equal(t, problem.NoMoreMessage, m.status)
}

func TestModelDeactivateRulePersistsAndDismisses(t *testing.T) {
	t.Parallel()

	store := rulestore.New(filepath.Join(t.TempDir(), "ignored.yml"))
	m := readyModel(t, Options{
		Content: []byte("Teh quick fox. Teh slow dog."),
		Store:   store,
	}, testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	press(m, "d")

	assert.Equal(t, "deactivated rule MORFOLOGIK_RULE_EN_US", m.status)
	assert.Zero(t, m.sess.Len(), "every problem of the rule leaves the session")

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "MORFOLOGIK_RULE_EN_US", entries[0].ID)
	assert.Equal(t, "Possible spelling mistake found.", entries[0].Description)
}

func TestModelUndoRestoresContent(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
		testMatch(0, 3, "The"))

	press(m, "enter")
	require.Equal(t, "The quick fox.", string(m.Content()))

	press(m, "u")
	assert.Equal(t, "Teh quick fox.", string(m.Content()))

	press(m, "u")
	assert.Equal(t, "nothing to undo", m.status)
}

func TestModelSaveWritesFileAndBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "draft.md")
	m := readyModel(t, Options{
		Path:    path,
		Content: []byte("Teh quick fox."),
		Backup:  true,
	}, testMatch(0, 3, "The"))

	press(m, "enter", "w")

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "The quick fox.", string(written))

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "Teh quick fox.", string(backup))

	assert.True(t, m.Saved())
	assert.False(t, m.buf.Dirty())
	assert.True(t, m.Modified(), "modified still compares against the original")
}

func TestModelPreviewNeverWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "draft.md")
	m := readyModel(t, Options{
		Path:    path,
		Content: []byte("Teh quick fox."),
		Preview: true,
	}, testMatch(0, 3, "The"))

	press(m, "enter", "w")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, m.Saved())

	// Preview sessions quit without a confirmation step.
	press(m, "q")
	assert.True(t, m.quitting)
}

func TestModelQuitConfirmsOnUnsavedChanges(t *testing.T) {
	t.Parallel()

	t.Run("stay", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The"))

		press(m, "enter", "q")
		assert.Equal(t, stateConfirmQuit, m.state)
		assert.False(t, m.quitting)

		press(m, "esc")
		assert.Equal(t, stateReviewing, m.state)
	})

	t.Run("discard", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The"))

		press(m, "enter", "q", "n")
		assert.True(t, m.quitting)
		assert.False(t, m.Saved())
	})

	t.Run("write and quit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "draft.md")
		m := readyModel(t, Options{Path: path, Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The"))

		press(m, "enter", "q", "y")
		assert.True(t, m.quitting)
		assert.True(t, m.Saved())

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "The quick fox.", string(written))
	})

	t.Run("clean buffer quits immediately", func(t *testing.T) {
		t.Parallel()

		m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
			testMatch(0, 3, "The"))

		press(m, "q")
		assert.True(t, m.quitting)
	})
}

func TestModelHostEventRouting(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
		testMatch(0, 3, "The"))

	m.Update(hostEventMsg{kind: eventStatus, text: "hello"})
	assert.Equal(t, "hello", m.status)

	m.Update(hostEventMsg{kind: eventPanel, text: "details"})
	assert.True(t, m.panelOpen)
	assert.Equal(t, "details", m.panelText)

	m.Update(hostEventMsg{kind: eventHidePanel})
	assert.False(t, m.panelOpen)

	m.Update(hostEventMsg{kind: eventActivityStart, text: "LanguageTool"})
	assert.True(t, m.busy)
	m.Update(hostEventMsg{kind: eventActivityStop})
	assert.False(t, m.busy)
}

func TestModelErrorOverlaySwallowsKeys(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	m.Update(hostEventMsg{kind: eventErrorText, text: "connection refused"})
	require.Equal(t, "connection refused", m.errText)

	press(m, "n")
	assert.Equal(t, 0, currentStart(t, m), "keys are ignored while the overlay shows")

	press(m, "esc")
	assert.Empty(t, m.errText)

	press(m, "n")
	assert.Equal(t, 15, currentStart(t, m))
}

func TestModelHostMethodsForwardToChannel(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Content: []byte("hi")})

	m.StatusMessage("working")
	ev := <-m.events
	assert.Equal(t, eventStatus, ev.kind)
	assert.Equal(t, "working", ev.text)

	stop := m.Activity("LanguageTool")
	ev = <-m.events
	assert.Equal(t, eventActivityStart, ev.kind)
	stop()
	ev = <-m.events
	assert.Equal(t, eventActivityStop, ev.kind)
}

func TestModelRecheckChecksWholeBuffer(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox.")},
		testMatch(0, 3, "The"))
	require.False(t, m.buf.Selection().IsEmpty(), "a problem is selected")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})

	assert.Equal(t, stateChecking, m.state)
	assert.True(t, m.buf.Selection().IsEmpty(), "the selection collapses before the run")
	assert.NotNil(t, cmd)
}

func TestModelCheckFailureIsReported(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Content: []byte("hi")})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(checkDoneMsg{err: assert.AnError})

	assert.Equal(t, stateReviewing, m.state)
	assert.ErrorIs(t, m.Err(), assert.AnError)
}

func TestModelViewShowsPositionAndHints(t *testing.T) {
	t.Parallel()

	m := readyModel(t, Options{Content: []byte("Teh quick fox. Teh slow dog.")},
		testMatch(0, 3, "The"), testMatch(15, 3, "The"))

	view := m.View()
	assert.Contains(t, view, "problem 1/2")
	assert.Contains(t, view, "deactivate rule")
	assert.Contains(t, view, "draft.md")
}
