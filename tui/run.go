// Package tui implements the interactive flipbook front end: a settings form
// followed by a live progress screen while the pipeline runs.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/user/flipbook-cli/flipbook"
	"github.com/user/flipbook-cli/pkg/timeutil"
	"github.com/user/flipbook-cli/tui/components"
	"github.com/user/flipbook-cli/tui/forms"
	"github.com/user/flipbook-cli/tui/styles"
)

// ErrAborted is returned when the user leaves the TUI before a run finishes.
var ErrAborted = errors.New("aborted")

// ErrAbandoned is returned when the user quits while the pipeline is still
// running. It matches ErrAborted.
var ErrAbandoned = fmt.Errorf("run abandoned before finishing: %w", ErrAborted)

// runProgressMsg carries a checkpoint from the pipeline goroutine.
type runProgressMsg struct {
	progress flipbook.Progress
}

// runDoneMsg is sent once the pipeline returns, successfully or not.
type runDoneMsg struct {
	state *flipbook.RunState
	err   error
}

// waitForRunMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForRunMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// startRunGoroutine runs the pipeline in the background. Checkpoints and the
// final result are sent to the returned channel, which is closed afterwards.
// Once the program stops receiving, the goroutine parks on its next send, so
// an abandoned run writes at most one more page before the process exits.
func startRunGoroutine(p *flipbook.Pipeline, cfg flipbook.Config) <-chan tea.Msg {
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)
		state, err := p.Run(cfg, func(pr flipbook.Progress) {
			ch <- runProgressMsg{progress: pr}
		})
		ch <- runDoneMsg{state: state, err: err}
	}()
	return ch
}

// Model is the bubbletea model for the progress screen.
type Model struct {
	cfg       flipbook.Config
	ch        <-chan tea.Msg
	width     int
	startedAt time.Time

	sampled     int
	interleaved bool
	pages       components.RunProgressState

	done  bool
	state *flipbook.RunState
	err   error
}

// NewModel returns a progress screen fed by ch.
func NewModel(cfg flipbook.Config, ch <-chan tea.Msg) Model {
	return Model{cfg: cfg, ch: ch, width: 60, startedAt: time.Now()}
}

// Init starts listening for pipeline messages.
func (m Model) Init() tea.Cmd {
	return waitForRunMsg(m.ch)
}

// Update handles pipeline messages, window resizes and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc", "enter":
			if m.done {
				return m, tea.Quit
			}
		}
		return m, nil

	case runProgressMsg:
		m.applyProgress(msg.progress)
		return m, waitForRunMsg(m.ch)

	case runDoneMsg:
		m.done = true
		m.state = msg.state
		m.err = msg.err
		if msg.err != nil {
			m.pages.Failed = m.pages.Active
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyProgress(p flipbook.Progress) {
	switch p.Stage {
	case flipbook.StageSampled:
		m.sampled = p.Frames
	case flipbook.StageInterleaved:
		m.interleaved = true
		m.pages = components.RunProgressState{Active: true, Total: p.Total}
	case flipbook.StageWriting:
		m.pages.Completed = p.Current
		m.pages.CurrentFile = p.Path
	case flipbook.StageWritten:
		m.pages.Completed = p.Current
		m.pages.CurrentFile = ""
	}
}

func (m Model) stages() []components.StageItem {
	sample := components.StageItem{Label: "Sample frames", Status: components.StageActive}
	inter := components.StageItem{Label: "Interleave"}
	write := components.StageItem{Label: "Write pages"}

	if m.sampled > 0 {
		sample.Status = components.StageDone
		sample.Detail = fmt.Sprintf("%d frames", m.sampled)
		inter.Status = components.StageActive
	}
	if m.interleaved {
		inter.Status = components.StageDone
		inter.Detail = fmt.Sprintf("%d composites", m.pages.Total)
		write.Status = components.StageActive
	}
	if m.done {
		switch {
		case m.err == nil:
			write.Status = components.StageDone
			write.Detail = fmt.Sprintf("%d pages", m.pages.Completed)
		case m.interleaved:
			write.Status = components.StageFailed
		case m.sampled > 0:
			inter.Status = components.StageFailed
		default:
			sample.Status = components.StageFailed
		}
	}
	return []components.StageItem{sample, inter, write}
}

func (m Model) statusBar() components.StatusBarState {
	state := components.StatusBarState{
		Interval: m.cfg.IntervalSeconds,
		Width:    m.cfg.TargetWidth,
		Split:    m.cfg.SplitRatio,
		Border:   m.cfg.AddBorder,
		Failed:   m.done && m.err != nil,
	}
	if m.done && m.state != nil {
		state.Elapsed = timeutil.FormatElapsed(m.state.Elapsed())
	}
	return state
}

// View renders the stage checklist, the page progress box and the outcome.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Flipbook"))
	b.WriteString("\n")
	b.WriteString(styles.SecondaryText.Render(m.cfg.VideoPath + " → " + m.cfg.OutputDir))
	b.WriteString("\n\n")
	b.WriteString(components.StageList(m.stages()))
	b.WriteString("\n")

	if box := components.RunProgress(m.pages, min(m.width, 72)); box != "" {
		b.WriteString("\n")
		b.WriteString(box)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.StatusBar(m.statusBar(), m.width))
	b.WriteString("\n")

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(styles.Warning.Render("Error: " + m.err.Error()))
		} else {
			msg := fmt.Sprintf("Flipbook created: %d pages in %s", m.pages.Completed, m.cfg.OutputDir)
			if m.state != nil {
				msg += " (" + timeutil.FormatElapsed(m.state.Elapsed()) + ")"
			}
			b.WriteString(styles.Success.Render(msg))
			if m.state != nil {
				for _, w := range m.state.FontWarnings {
					b.WriteString("\n")
					b.WriteString(styles.SecondaryText.Render("font: " + w.String()))
				}
			}
		}
		b.WriteString("\n\n")
		b.WriteString(styles.SecondaryText.Render("press q to quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// Result returns the run outcome. If the pipeline is still running it
// returns the progress seen so far as a failed state with ErrAbandoned.
func (m Model) Result() (*flipbook.RunState, error) {
	if !m.done {
		return &flipbook.RunState{
			Config:     m.cfg,
			Status:     flipbook.StatusFailed,
			Frames:     m.sampled,
			Pages:      m.pages.Completed,
			Err:        ErrAbandoned,
			StartedAt:  m.startedAt,
			FinishedAt: time.Now(),
		}, ErrAbandoned
	}
	return m.state, m.err
}

// Run shows the settings form prefilled from base, confirms overwriting an
// existing page set, then runs the pipeline behind the progress screen.
func Run(p *flipbook.Pipeline, base flipbook.Config) (*flipbook.RunState, error) {
	result := forms.NewRunFormResult(base)
	for {
		if err := forms.NewRunForm(result).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrAborted
			}
			return nil, err
		}

		cfg, err := result.Config(base)
		if err != nil {
			return nil, err
		}

		existing, err := flipbook.ExistingPages(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			overwrite := false
			if err := forms.NewConfirmOverwriteForm(cfg.OutputDir, len(existing), &overwrite).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil, ErrAborted
				}
				return nil, err
			}
			if !overwrite {
				continue
			}
		}

		return runProgress(p, cfg)
	}
}

func runProgress(p *flipbook.Pipeline, cfg flipbook.Config) (*flipbook.RunState, error) {
	m := NewModel(cfg, startRunGoroutine(p, cfg))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}
	return final.(Model).Result()
}
