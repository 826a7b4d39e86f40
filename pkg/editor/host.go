package editor

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/gramlint/internal/logging"
)

// NopHost discards every message. Useful as a default.
type NopHost struct{}

func (NopHost) StatusMessage(string) {}

func (NopHost) ErrorMessage(string) {}

func (NopHost) ShowPanel(string) {}

func (NopHost) HidePanel() {}

func (NopHost) Activity(string) (stop func()) { return func() {} }

// LogHost routes host messages to the structured logger. This is the host
// used by non-interactive command runs.
type LogHost struct {
	Logger *log.Logger
}

// NewLogHost creates a LogHost, defaulting to the package logger.
func NewLogHost(logger *log.Logger) *LogHost {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogHost{Logger: logger}
}

func (h *LogHost) StatusMessage(msg string) {
	h.Logger.Info(msg)
}

func (h *LogHost) ErrorMessage(msg string) {
	h.Logger.Error(msg)
}

func (h *LogHost) ShowPanel(text string) {
	h.Logger.Info(text)
}

func (h *LogHost) HidePanel() {}

func (h *LogHost) Activity(label string) (stop func()) {
	h.Logger.Debug(label)
	return func() {}
}

// CollectHost records every message it receives. Batch runs use it to
// attach transport failures to file outcomes; tests use it to assert on
// messages.
type CollectHost struct {
	Statuses []string
	Errors   []string
	Panels   []string

	// PanelHidden counts HidePanel calls.
	PanelHidden int

	// Activities records the labels of busy indicators shown.
	Activities []string
}

func (h *CollectHost) StatusMessage(msg string) {
	h.Statuses = append(h.Statuses, msg)
}

func (h *CollectHost) ErrorMessage(msg string) {
	h.Errors = append(h.Errors, msg)
}

func (h *CollectHost) ShowPanel(text string) {
	h.Panels = append(h.Panels, text)
}

func (h *CollectHost) HidePanel() {
	h.PanelHidden++
}

func (h *CollectHost) Activity(label string) (stop func()) {
	h.Activities = append(h.Activities, label)
	return func() {}
}

// LastError returns the most recent error message, or "".
func (h *CollectHost) LastError() string {
	if len(h.Errors) == 0 {
		return ""
	}
	return h.Errors[len(h.Errors)-1]
}

// LastStatus returns the most recent status message, or "".
func (h *CollectHost) LastStatus() string {
	if len(h.Statuses) == 0 {
		return ""
	}
	return h.Statuses[len(h.Statuses)-1]
}
