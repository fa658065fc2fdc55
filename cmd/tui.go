// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hacst/swire/pkg/swire"
	"github.com/spf13/cobra"
)

var tuiShowBits bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live decode view in a terminal UI",
	Long: `Decode a capture in a scrolling terminal UI.

The event log scrolls as transactions are decoded, with errors
highlighted; a statistics footer updates once per second. Press 'q'
to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiShowBits, "show-bits", false, "Show bit-level events")
}

// Messages
type tickMsg time.Time
type eventMsg swire.Event
type decodeDoneMsg struct {
	err error
}

// TUI model
type model struct {
	connInfo string
	showBits bool

	vp      viewport.Model
	ready   bool
	lines   []string
	stats   *swire.Statistics
	events  chan swire.Event
	done    chan error
	decoded bool
	err     error

	quitting bool
}

const maxLogLines = 500

func initialModel(connInfo string, events chan swire.Event, done chan error) model {
	return model{
		connInfo: connInfo,
		showBits: tuiShowBits,
		stats:    swire.NewStatistics(),
		events:   events,
		done:     done,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForEvent(m.events, m.done),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent delivers the next decoded event, or the decoder's
// result once the event channel closes
func waitForEvent(events chan swire.Event, done chan error) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return decodeDoneMsg{err: <-done}
		}
		return eventMsg(e)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		headerHeight := 4
		footerHeight := 4
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.vp.SetContent(strings.Join(m.lines, "\n"))
		m.vp.GotoBottom()

	case tickMsg:
		m.stats.CalculateRates()
		return m, tickCmd()

	case eventMsg:
		m.addEvent(swire.Event(msg))
		return m, waitForEvent(m.events, m.done)

	case decodeDoneMsg:
		m.decoded = true
		m.err = msg.err
	}

	return m, nil
}

func (m *model) addEvent(e swire.Event) {
	m.stats.Update(e)

	if !m.showBits && (e.Class == swire.EventBit || e.Class == swire.EventCmdBit) {
		return
	}

	line := swire.FormatEvent(e)
	if e.Class == swire.EventError {
		line = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render(line)
	}
	m.lines = append(m.lines, line)

	// Keep only the last N lines
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	if m.ready {
		m.vp.SetContent(strings.Join(m.lines, "\n"))
		m.vp.GotoBottom()
	}
}

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	var s strings.Builder
	s.WriteString(titleStyle.Render("SWIRETAP - LIVE DECODE"))
	s.WriteString("\n")
	status := "decoding"
	if m.decoded {
		status = "capture complete"
		if m.err != nil {
			status = fmt.Sprintf("failed: %v", m.err)
		}
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("Source: %s | %s | Press 'q' to quit", m.connInfo, status)))
	s.WriteString("\n\n")

	if m.ready {
		s.WriteString(m.vp.View())
	}
	s.WriteString("\n\n")

	var errorPercent float64
	if m.stats.TotalEvents > 0 {
		errorPercent = float64(m.stats.Errors) * 100.0 / float64(m.stats.TotalEvents)
	}
	s.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Transactions:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Transactions)),
		statsLabelStyle.Render("Bytes:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Bytes)),
		statsLabelStyle.Render("Triggers:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Triggers)),
		statsLabelStyle.Render("Errors:"), errorStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.Errors, errorPercent)),
	))
	s.WriteString(headerStyle.Render(fmt.Sprintf("Rate: %.1f events/sec", m.stats.EventRate)))
	s.WriteString("\n")

	return s.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	src, closer, connInfo, err := OpenEdgeSource(opts)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	events := make(chan swire.Event, 64)
	done := make(chan error, 1)

	decoder, err := swire.NewDecoder(opts.DecoderConfig(), swire.SinkFunc(func(e swire.Event) {
		events <- e
	}))
	if err != nil {
		return err
	}

	go func() {
		done <- decoder.Run(src)
		close(events)
	}()

	p := tea.NewProgram(initialModel(connInfo, events, done))
	_, err = p.Run()
	return err
}
