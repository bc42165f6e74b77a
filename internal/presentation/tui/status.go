package tui

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/labscript-ai/labscript/pkg/domain"
)

var statusColors = map[domain.Status]string{
	domain.StatusIdle:    "#94a3b8",
	domain.StatusSuccess: "#4ade80",
	domain.StatusWarning: "#facc15",
	domain.StatusError:   "#f87171",
}

// StatusLine renders a colored one-line verdict for a simulation status.
func StatusLine(status domain.Status, message string) string {
	p := termenv.ColorProfile()
	label := termenv.String(fmt.Sprintf("[%s]", status)).
		Foreground(p.Color(statusColors[status])).
		Bold()
	if message == "" {
		return label.String()
	}
	return fmt.Sprintf("%s %s", label, message)
}

// EventLine renders one iteration event for terminal display. Unrecognized
// event types get the generic form rather than being dropped.
func EventLine(ev domain.IterationEvent) string {
	p := termenv.ColorProfile()
	tag := termenv.String(string(ev.Type)).Foreground(p.Color("#818cf8"))
	if ev.Message != "" {
		return fmt.Sprintf("  attempt %d  %s  %s", ev.Attempt, tag, ev.Message)
	}
	return fmt.Sprintf("  attempt %d  %s", ev.Attempt, tag)
}

// PrintBanner outputs the startup banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String(` _          _    ____            _       _   `).Foreground(p.Color("#34d399"))
	s2 := termenv.String(`| |    __ _| |__/ ___|  ___ _ __(_)_ __ | |_ `).Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(`| |   / _' | '_ \___ \ / __| '__| | '_ \| __|`).Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(`| |__| (_| | |_) |__) | (__| |  | | |_) | |_ `).Foreground(p.Color("#38bdf8"))
	s5 := termenv.String(`|_____\__,_|_.__/____/ \___|_|  |_| .__/ \__|`).Foreground(p.Color("#60a5fa"))
	s6 := termenv.String(`                                  |_|        `).Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
