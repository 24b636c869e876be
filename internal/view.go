package internal

import (
	"fmt"
	"strings"
	"time"

	"project_timer/internal/timelog"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	alarmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// formatClock renders a duration as HH:MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// formatHours renders a duration as decimal hours, e.g. "2.5h".
func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.1fh", d.Hours())
}

func (m *Model) emptyStateView() string {
	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Project Timer")+"\n\n"+
			inactiveStyle.Render("No projects yet. Press 'n' to add one."),
	)
}

func (m *Model) mainView() string {
	now := m.now()
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(80).Render("Project Timer"))
	sb.WriteString("\n\n")
	sb.WriteString(m.timerBox(now))
	sb.WriteString("\n")

	if m.Warning != "" {
		sb.WriteString(warningStyle.Render("! " + m.Warning))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Start/Stop: Enter | Reset: r | Switch: p | New: n | Logs: l | Countdown: c | ±1min: +/- | Quit: q"))

	return sb.String()
}

func (m *Model) timerBox(now time.Time) string {
	total := m.Timer.Total(now)

	var clock string
	status := "Stopped"
	statusStyle := inactiveStyle
	if m.Timer.Running() {
		clock = timerRunningStyle.Render(formatClock(total))
		status = "Running"
		statusStyle = runningStyle
	} else {
		clock = timerDisplayStyle.Render(formatClock(total))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project: %s\n\n", m.Project))
	sb.WriteString(fmt.Sprintf("%s  %s\n", clock, inactiveStyle.Render("("+formatHours(total)+")")))
	sb.WriteString(fmt.Sprintf("\n%s\n", statusStyle.Render(status)))

	if startedAt, ok := m.Timer.StartedAt(); ok {
		sb.WriteString(fmt.Sprintf("Session: %s\n", formatClock(now.Sub(startedAt))))
	}

	if len(m.Recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent Sessions"))
		sb.WriteString("\n")
		for _, s := range m.Recent {
			sb.WriteString(formatSessionEntry(s, false))
			sb.WriteString("\n")
		}
	}

	return boxStyle.Width(60).Render(sb.String())
}

func (m *Model) countdownView() string {
	now := m.now()
	remaining := m.Remaining(now)

	var sb strings.Builder
	sb.WriteString(titleStyle.Width(80).Render("Countdown"))
	sb.WriteString("\n\n")

	var box strings.Builder
	clockStyle := timerDisplayStyle
	if m.CD.Running() {
		clockStyle = timerRunningStyle
	}
	box.WriteString(fmt.Sprintf("%s\n", clockStyle.Render(formatClock(remaining))))
	box.WriteString(fmt.Sprintf("\nFrom: %s\n", formatClock(m.CountdownFrom)))

	if m.Alarm {
		box.WriteString("\n")
		box.WriteString(alarmStyle.Render("⚠ TIME'S UP ⚠"))
		box.WriteString("\n")
	}

	sb.WriteString(boxStyle.Width(40).Render(box.String()))
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Start/Stop: Enter | Reset: r | ±1min: +/- | Back: c | Quit: q"))

	return sb.String()
}

func (m *Model) switcherView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(80).Render("Switch Project"))
	sb.WriteString("\n\n")

	var list strings.Builder
	for i, name := range m.Projects {
		line := fmt.Sprintf("%s  %s", name, formatClock(m.store.Seconds(name)))
		if name == m.Project {
			line += " *"
		}
		if i == m.SelectedIndex {
			list.WriteString(itemSelectedStyle.Render(line))
		} else {
			list.WriteString(itemStyle.Render(inactiveStyle.Render(line)))
		}
		list.WriteString("\n")
	}

	sb.WriteString(boxStyle.Width(40).Render(list.String()))
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Navigate: Up/Down | Select: Enter | Delete: d | Cancel: Esc"))
	return sb.String()
}

func (m *Model) addFormView() string {
	label := inputStyle.Render("→ Project name: ")
	value := inputStyle.Render(m.NewProjectName + "█")

	form := fmt.Sprintf("%s%s\n\n%s",
		label, value,
		helpStyle.Render("Enter: Create | Esc: Cancel"),
	)

	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(50).Render(form),
	)
}

func (m *Model) confirmResetView() string {
	target := m.Project
	if m.Countdown {
		target = "countdown"
	}
	prompt := fmt.Sprintf("Reset %s to zero?\n\n%s",
		inputStyle.Render(target),
		helpStyle.Render("y: Reset | any other key: Cancel"),
	)

	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(50).Render(prompt),
	)
}

func (m *Model) confirmDeleteView() string {
	prompt := fmt.Sprintf("Delete %s and its session history?\n\n%s",
		inputStyle.Render(m.DeleteTarget),
		helpStyle.Render("y: Delete | any other key: Cancel"),
	)

	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(50).Render(prompt),
	)
}

func (m *Model) logView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(80).Render("All Sessions"))
	sb.WriteString("\n\n")

	if len(m.AllSessions) == 0 {
		sb.WriteString(inactiveStyle.Render("No sessions recorded yet."))
	} else {
		const pageSize = 15
		end := m.LogViewScroll + pageSize
		if end > len(m.AllSessions) {
			end = len(m.AllSessions)
		}
		for _, s := range m.AllSessions[m.LogViewScroll:end] {
			sb.WriteString(formatSessionEntry(s, true))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Close: Esc"))
	return sb.String()
}

func formatSessionEntry(s timelog.Session, withProject bool) string {
	timeStr := logTimeStyle.Render(s.StoppedAt.Format("Jan 02 15:04"))
	if withProject {
		return fmt.Sprintf("  %s  %s  %s", timeStr, formatClock(s.Duration), s.Project)
	}
	return fmt.Sprintf("  %s  %s", timeStr, formatClock(s.Duration))
}
