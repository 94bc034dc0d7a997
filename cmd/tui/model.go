package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/ticker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	workingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	amountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// spinner glyphs stand in for the 14 tray frames.
var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏", "⠋", "⠙", "⠹", "⠸"}

// ===== MESSAGES =====

type titleMsg struct {
	title   string
	visible bool
}

type workingMsg bool

type snapshotMsg payroll.Snapshot

type frameMsg ticker.Frame

type statusMsg string

// teaSink forwards ticker side effects into the bubbletea program.
type teaSink struct {
	send func(tea.Msg)
}

func (s teaSink) SetTitle(title string, visible bool) { s.send(titleMsg{title, visible}) }
func (s teaSink) SetWorking(working bool) { s.send(workingMsg(working)) }
func (s teaSink) Publish(snap payroll.Snapshot) { s.send(snapshotMsg(snap)) }

// ===== MODEL =====

type model struct {
	overrides *recovery.Overrides
	signals   *ticker.Signals

	title   string
	visible bool
	working bool
	frame   ticker.Frame
	snap    *payroll.Snapshot
	status  string
	width   int
}

func newModel(overrides *recovery.Overrides, signals *ticker.Signals) model {
	return model{overrides: overrides, signals: signals, frame: ticker.Frame{Idle: true}}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "v":
			return m, m.toggleVacation()
		case "r":
			m.signals.NotifySettingsChanged()
			m.status = "settings reload requested"
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case titleMsg:
		m.title, m.visible = msg.title, msg.visible
	case workingMsg:
		m.working = bool(msg)
	case snapshotMsg:
		snap := payroll.Snapshot(msg)
		m.snap = &snap
	case frameMsg:
		m.frame = ticker.Frame(msg)
	case statusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m model) toggleVacation() tea.Cmd {
	if m.snap == nil || m.overrides == nil {
		return nil
	}
	today := payroll.DateOf(m.snap.AsOf)
	return func() tea.Msg {
		ctx := context.Background()
		if m.overrides.VacationOn(ctx, today) {
			if err := m.overrides.ClearVacation(ctx); err != nil {
				return statusMsg("vacation: " + err.Error())
			}
			return statusMsg("vacation cleared")
		}
		if err := m.overrides.SetVacation(ctx, today); err != nil {
			return statusMsg("vacation: " + err.Error())
		}
		return statusMsg("vacation set for " + today.String())
	}
}

func (m model) View() string {
	if m.snap == nil {
		return boxStyle.Render("Waiting for the first tick...\n(complete onboarding through the API first)") +
			"\n" + helpStyle.Render("q quit")
	}

	icon := "●"
	if !m.frame.Idle {
		icon = spinner[m.frame.Index%len(spinner)]
	}
	label := m.title
	if !m.visible {
		label = ""
	}
	header := titleStyle.Render(icon + label)

	state := idleStyle.Render(string(m.snap.WorkStatus))
	if m.working {
		state = workingStyle.Render(string(m.snap.WorkStatus))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status       %s\n", state)
	fmt.Fprintf(&b, "Today        %s\n", amountStyle.Render(payroll.FormatKRW(m.snap.TodayEarnings)))
	fmt.Fprintf(&b, "Since payday %s\n", amountStyle.Render(payroll.FormatKRW(m.snap.AccumulatedEarnings)))
	fmt.Fprintf(&b, "Daily rate   %s\n", payroll.FormatKRW(m.snap.DailyRate))
	fmt.Fprintf(&b, "Worked days  %d\n", m.snap.WorkedDays)
	fmt.Fprintf(&b, "Pay period   %s", m.snap.Period)

	out := header + "\n" + boxStyle.Render(b.String()) + "\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	return out + helpStyle.Render("v toggle vacation • r reload settings • q quit")
}
