package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/ccvtac/internal/config"
	"github.com/handiism/ccvtac/internal/postprocess"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModel_UsesSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.WorkingDirectory = "/tmp/downloads"
	settings.CreatePlaylist = true

	m := NewModel(settings)
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if got := m.textInput.Value(); got != "/tmp/downloads" {
		t.Errorf("input = %q, want %q", got, "/tmp/downloads")
	}
	if !m.playlist {
		t.Error("playlist option should start enabled")
	}
}

func TestUpdate_TogglesOptions(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	tests := []struct {
		key  tea.KeyType
		name string
		get  func(Model) bool
	}{
		{tea.KeyCtrlP, "playlist", func(m Model) bool { return m.playlist }},
		{tea.KeyCtrlK, "keepSidecar", func(m Model) bool { return m.keepSidecar }},
		{tea.KeyCtrlY, "uploadYear", func(m Model) bool { return m.uploadYear }},
		{tea.KeyCtrlV, "verbose", func(m Model) bool { return m.verbose }},
	}

	for _, tt := range tests {
		before := tt.get(m)
		m = update(t, m, tea.KeyMsg{Type: tt.key})
		if tt.get(m) == before {
			t.Errorf("%s was not toggled", tt.name)
		}
	}
}

func TestUpdate_InvalidSettingsShowError(t *testing.T) {
	settings := config.DefaultSettings()
	settings.WorkingDirectory = t.TempDir()
	settings.MaxConcurrentBundles = 0

	m := update(t, NewModel(settings), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.View(), "max concurrent bundles") {
		t.Errorf("error view missing validation message:\n%s", m.View())
	}
}

func TestUpdate_ProgressHidesVerboseLogs(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.verbose = false

	m = update(t, m, ProgressMsg{Event: postprocess.ProgressEvent{Message: "detail", Level: postprocess.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: postprocess.ProgressEvent{Message: "Skipping X", Level: postprocess.LevelWarning}})

	if len(m.logs) != 1 || m.logs[0].Message != "Skipping X" {
		t.Errorf("logs = %+v, want only the warning", m.logs)
	}
}

func TestUpdate_KeepsLastLogs(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: postprocess.ProgressEvent{Message: "line", Level: postprocess.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}

func TestUpdate_Done(t *testing.T) {
	report := &postprocess.Report{
		Bundles:   2,
		Succeeded: 1,
		Moved:     []string{"/music/a.m4a"},
		Failures: []*postprocess.BundleError{
			{ResourceKey: "BBBBBBBBBBB", Stage: postprocess.StageTagging, Err: errors.New("boom")},
		},
	}

	tests := []struct {
		name  string
		err   error
		state State
	}{
		{"partial failure completes", report.Err(), StateComplete},
		{"success completes", nil, StateComplete},
		{"other error", errors.New("failed to list"), StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(config.DefaultSettings())
			m.state = StateProcessing
			m = update(t, m, DoneMsg{Report: report, Err: tt.err})
			if m.state != tt.state {
				t.Errorf("state = %v, want %v", m.state, tt.state)
			}
		})
	}
}

func TestView_CompleteListsFailures(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateComplete
	m.report = &postprocess.Report{
		Bundles:   1,
		Succeeded: 0,
		Failures: []*postprocess.BundleError{
			{ResourceKey: "BBBBBBBBBBB", Stage: postprocess.StageMoving, Err: errors.New("disk full")},
		},
	}

	view := m.View()
	for _, want := range []string{"Bundles: 0/1", "BBBBBBBBBBB: moving failed: disk full", "r: run again"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestUpdate_RunAgainResets(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "old"}}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if len(m.logs) != 0 {
		t.Errorf("logs not cleared: %+v", m.logs)
	}
}
