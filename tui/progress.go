// Package tui provides the optional bubbletea progress view shown while
// ffmpeg renders a save file.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/clip-stitch-cli/stitch"
	"github.com/user/clip-stitch-cli/tui/styles"
)

// renderCompleteMsg is sent when the render finishes successfully.
type renderCompleteMsg struct {
	result *stitch.Result
}

// renderErrorMsg is sent when the render fails.
type renderErrorMsg struct {
	err error
}

// tickMsg drives the elapsed-time display.
type tickMsg time.Time

// waitForRenderMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForRenderMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type progressModel struct {
	opts    stitch.Options
	ch      <-chan tea.Msg
	cancel  context.CancelFunc
	started time.Time

	width     int
	done      bool
	cancelled bool
	result    *stitch.Result
	err       error
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(waitForRenderMsg(m.ch), tick())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// Cancel the render context; the goroutine reports the
			// resulting failure and quits the program.
			m.cancelled = true
			m.cancel()
		}
		return m, nil
	case renderCompleteMsg:
		m.done = true
		m.result = msg.result
		return m, tea.Quit
	case renderErrorMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m progressModel) View() string {
	width := m.width
	if width <= 0 || width > 64 {
		width = 64
	}

	elapsed := time.Since(m.started).Round(100 * time.Millisecond)

	lines := []string{
		styles.Title.Render("Rendering"),
		styles.SecondaryText.Render("source  " + filepath.Base(m.opts.VideoPath)),
		styles.SecondaryText.Render("save    " + filepath.Base(m.opts.SaveFilePath)),
		styles.SecondaryText.Render("output  " + m.opts.OutputPath),
		"",
	}

	switch {
	case m.err != nil:
		lines = append(lines, styles.Error.Render("Failed: "+m.err.Error()))
	case m.result != nil:
		lines = append(lines, styles.Success.Render(
			fmt.Sprintf("Done: %d clips in %s", m.result.ClipCount, elapsed)))
	case m.cancelled:
		lines = append(lines, styles.Error.Render("Cancelling..."))
	default:
		lines = append(lines, styles.PrimaryText.Render(
			fmt.Sprintf("Running ffmpeg... %s", elapsed)))
	}

	box := ""
	for i, l := range lines {
		if i > 0 {
			box += "\n"
		}
		box += l
	}
	return styles.Border.Width(width - 2).Render(box) + "\n"
}

// RunProgress renders the save file behind a progress view. ffmpeg output
// is captured rather than streamed; on failure the captured output is
// included in the returned error. Ctrl+C cancels the render.
func RunProgress(ctx context.Context, stitcher *stitch.Stitcher, opts stitch.Options) (*stitch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Keep ffmpeg off the terminal while the view owns it.
	opts.Stdout = nil
	opts.Stderr = nil

	ch := make(chan tea.Msg, 1)
	go func() {
		defer close(ch)
		result, err := stitcher.Render(ctx, opts)
		if err != nil {
			ch <- renderErrorMsg{err}
			return
		}
		ch <- renderCompleteMsg{result}
	}()

	m := progressModel{
		opts:    opts,
		ch:      ch,
		cancel:  cancel,
		started: time.Now(),
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}

	fm := final.(progressModel)
	if fm.err != nil {
		return nil, fm.err
	}
	if fm.result == nil {
		return nil, fmt.Errorf("render did not complete")
	}
	return fm.result, nil
}
