package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gramlint/pkg/check"
	"github.com/yaklabco/gramlint/pkg/editor"
)

const (
	headerHeight = 2
	footerHeight = 2
)

type styles struct {
	title        lipgloss.Style
	dirty        lipgloss.Style
	info         lipgloss.Style
	status       lipgloss.Style
	hint         lipgloss.Style
	problem      lipgloss.Style
	current      lipgloss.Style
	panel        lipgloss.Style
	overlay      lipgloss.Style
	errorBox     lipgloss.Style
	pickSelected lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		dirty:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		problem: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("3")),
		current: lipgloss.NewStyle().Reverse(true).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2),
		errorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 2),
		pickSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.errText != "":
		b.WriteString(m.renderOverlay(m.renderError()))
	case m.state == stateConfirmQuit:
		b.WriteString(m.renderOverlay(m.renderConfirm()))
	case m.state == statePicking:
		b.WriteString(m.renderOverlay(m.renderPicker()))
	default:
		b.WriteString(m.viewport.View())
		if m.panelOpen {
			b.WriteString("\n")
			b.WriteString(m.renderPanel())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	h := m.height - headerHeight - footerHeight - m.panelHeight()
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *Model) panelHeight() int {
	if !m.panelOpen {
		return 0
	}
	// The separating newline above the panel counts toward its area.
	return lipgloss.Height(m.renderPanel()) + 1
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBuffer())
}

func (m *Model) scrollToCurrent() {
	if !m.ready || !m.hasCurrent || m.sess == nil {
		return
	}
	content := m.buf.Content()
	start := m.sess.Region(m.current).Start
	if start > len(content) {
		start = len(content)
	}
	line := strings.Count(content[:start], "\n")
	target := line - m.viewport.Height/2
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(target)
}

func (m *Model) renderHeader() string {
	title := m.styles.title.Render("gramlint · " + m.path)
	if m.buf.Dirty() {
		title += m.styles.dirty.Render(" [+]")
	}
	if m.state == stateChecking || m.busy {
		label := m.activityLabel
		if label == "" {
			label = check.ActivityLabel
		}
		title += "  " + m.spinner.View() + m.styles.info.Render(label)
	}
	return title + "\n" + m.infoLine()
}

func (m *Model) infoLine() string {
	if m.state == stateChecking {
		return m.styles.info.Render("checking")
	}
	if m.sess == nil {
		return m.styles.info.Render("no results")
	}

	index, total := m.problemPosition()
	if total == 0 {
		return m.styles.info.Render("no open problems")
	}
	if !m.hasCurrent || index == 0 {
		return m.styles.info.Render(fmt.Sprintf("%d problems", total))
	}

	line := fmt.Sprintf("problem %d/%d · %s", index, total, m.current.RuleID)
	if m.current.Category != "" {
		line += " · " + m.current.Category
	}
	return m.styles.info.Render(line)
}

// problemPosition returns the current problem's 1-based position among the
// unsolved problems, and their count. Position 0 means the current problem
// is not among them.
func (m *Model) problemPosition() (index, total int) {
	open := m.sess.Unsolved()
	total = len(open)
	if !m.hasCurrent {
		return 0, total
	}
	for i, p := range open {
		if p.RegionKey == m.current.RegionKey {
			return i + 1, total
		}
	}
	return 0, total
}

// renderBuffer styles every unsolved problem region over the raw content,
// the current one filled, the rest underlined.
func (m *Model) renderBuffer() string {
	content := m.buf.Content()
	if m.sess == nil {
		return content
	}

	type mark struct {
		region  editor.Region
		current bool
	}

	var curRegion editor.Region
	if m.hasCurrent {
		curRegion = m.sess.Region(m.current)
	}

	var marks []mark
	for _, p := range m.sess.Unsolved() {
		r := m.sess.Region(p).Clamp(len(content))
		if r.IsEmpty() {
			continue
		}
		isCurrent := m.hasCurrent && p.RegionKey == m.current.RegionKey && r == curRegion
		marks = append(marks, mark{region: r, current: isCurrent})
	}
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].region.Start < marks[j].region.Start
	})

	var b strings.Builder
	pos := 0
	for _, mk := range marks {
		if mk.region.Start < pos {
			continue
		}
		b.WriteString(content[pos:mk.region.Start])
		style := m.styles.problem
		if mk.current {
			style = m.styles.current
		}
		b.WriteString(style.Render(content[mk.region.Start:mk.region.End]))
		pos = mk.region.End
	}
	b.WriteString(content[pos:])
	return b.String()
}

func (m *Model) renderPanel() string {
	maxLines := m.height / 3
	if maxLines < 4 {
		maxLines = 4
	}
	lines := strings.Split(m.panelText, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], "...")
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	return m.styles.panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	hints := "n/p problem · enter fix · i ignore · d deactivate rule · u undo · g re-check · w write · q quit"
	return m.styles.status.Render(m.status) + "\n" + m.styles.hint.Render(hints)
}

func (m *Model) renderOverlay(box string) string {
	area := m.height - headerHeight - footerHeight
	if area < 3 {
		area = 3
	}
	return lipgloss.Place(m.width, area, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderError() string {
	width := m.width - 8
	if width > 64 {
		width = 64
	}
	if width < 16 {
		width = 16
	}
	text := m.errText + "\n\n" + m.styles.hint.Render("enter/esc dismiss · q quit")
	return m.styles.errorBox.Width(width).Render(text)
}

func (m *Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("replace with"))
	b.WriteString("\n\n")
	for i, choice := range m.pickChoices {
		line := fmt.Sprintf("%d. %s", i+1, choice)
		if i == m.pickIndex {
			b.WriteString(m.styles.pickSelected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("j/k move · enter apply · 1-9 pick · esc cancel"))
	return m.styles.overlay.Render(b.String())
}

func (m *Model) renderConfirm() string {
	text := "unsaved changes\n\n" +
		m.styles.hint.Render("y write and quit · n discard · esc stay")
	return m.styles.overlay.Render(text)
}
