// Package tui provides a Bubble Tea terminal user interface for ccvtac.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/ccvtac/internal/config"
	"github.com/handiism/ccvtac/internal/postprocess"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateProcessing
	StateComplete
	StateError
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   postprocess.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	report    *postprocess.Report
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	pipeline *postprocess.Pipeline
	events   chan postprocess.ProgressEvent

	processed int32
	failed    int32
	total     int32

	// Options
	playlist    bool
	keepSidecar bool
	uploadYear  bool
	verbose     bool

	width  int
	height int
}

// NewModel creates a new TUI model. The input is prefilled with the
// configured working directory.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/downloads"
	ti.SetValue(settings.WorkingDirectory)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		ctx:         ctx,
		cancel:      cancel,
		playlist:    settings.CreatePlaylist,
		keepSidecar: settings.KeepSidecarFiles,
		uploadYear:  settings.UploadYearFallback,
		verbose:     settings.VerboseOutput,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event postprocess.ProgressEvent
	}

	// DoneMsg is sent when the pipeline run returns.
	DoneMsg struct {
		Report *postprocess.Report
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateProcessing {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				return m.start()
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "ctrl+k":
			if m.state == StateInput {
				m.keepSidecar = !m.keepSidecar
				return m, nil
			}

		case "ctrl+y":
			if m.state == StateInput {
				m.uploadYear = !m.uploadYear
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != postprocess.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.events))
		}

	case DoneMsg:
		m.report = msg.Report
		if m.pipeline != nil {
			m.processed, m.failed, m.total = m.pipeline.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil && !errors.Is(msg.Err, postprocess.ErrPartialFailure):
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.pipeline != nil && m.state == StateProcessing {
			m.processed, m.failed, m.total = m.pipeline.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start validates the options and launches the pipeline.
func (m Model) start() (tea.Model, tea.Cmd) {
	settings := *m.settings
	settings.WorkingDirectory = strings.TrimSpace(m.textInput.Value())
	settings.CreatePlaylist = m.playlist
	settings.KeepSidecarFiles = m.keepSidecar
	settings.UploadYearFallback = m.uploadYear
	settings.VerboseOutput = m.verbose

	if err := settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	events := make(chan postprocess.ProgressEvent, 64)
	ctx := m.ctx
	pipeline := postprocess.New(&settings, postprocess.DefaultCollaborators(&settings), func(event postprocess.ProgressEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})

	m.state = StateProcessing
	m.pipeline = pipeline
	m.events = events

	run := func() tea.Msg {
		report, err := pipeline.RunDirectory(ctx)
		close(events)
		return DoneMsg{Report: report, Err: err}
	}

	return m, tea.Batch(run, waitForEvent(events), tickProgress(), m.spinner.Tick)
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.report = nil
	m.err = nil
	m.processed, m.failed, m.total = 0, 0, 0
	m.pipeline = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.Focus()
}

// waitForEvent delivers the next progress event as a ProgressMsg. It
// yields no message once the channel is closed.
func waitForEvent(events <-chan postprocess.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ ccvtac"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tag and file downloaded audio"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateProcessing:
		b.WriteString(m.viewProcessing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Working directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Keep JSON and image files (ctrl+k)\n", checkbox(m.keepSidecar)))
	b.WriteString(fmt.Sprintf("  %s Fall back to upload year (ctrl+y)\n", checkbox(m.uploadYear)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Move to: %s", m.settings.MoveToDirectory)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewProcessing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Processing bundles..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Bundles: %d/%d | Failed: %d", m.processed, m.total, m.failed)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.report == nil {
		b.WriteString(boxStyle.Render("Nothing to do."))
		return b.String()
	}

	body := fmt.Sprintf("✨ Done!\n\nBundles: %d/%d\nFiles moved: %d\nSkipped: %d",
		m.report.Succeeded, m.report.Bundles, len(m.report.Moved), len(m.report.Rejected))
	if m.report.PlaylistPath != "" {
		body += "\nPlaylist: " + m.report.PlaylistPath
	}
	b.WriteString(boxStyle.Render(body))
	b.WriteString("\n")

	for _, f := range m.report.Failures {
		b.WriteString(errorStyle.Render("✗ " + f.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case postprocess.LevelError:
			style = errorStyle
			prefix = "✗"
		case postprocess.LevelWarning:
			style = warningStyle
			prefix = "!"
		case postprocess.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case postprocess.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+p/k/y/v: toggle options • esc: quit"
	case StateProcessing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	m := NewModel(settings)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
