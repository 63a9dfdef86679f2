package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

func printResult(w io.Writer, res critique.Result, elapsed time.Duration) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	header := res.DesignType
	if header == "" {
		header = "UX"
	}
	_, _ = bold.Fprintf(w, "%s design\n", strings.ToUpper(header))
	_, _ = dim.Fprintf(w, "%s (%.1fs)\n\n", modeLabel(res), elapsed.Seconds())

	if len(res.Annotations) == 0 {
		fmt.Fprintln(w, "No issues reported.")
		return
	}

	for _, a := range res.Annotations {
		_, _ = severityColor(a.Severity).Fprintf(w, "%2d. [%s] ", a.ID, strings.ToUpper(string(a.Severity)))
		_, _ = bold.Fprint(w, a.Title)
		_, _ = dim.Fprintf(w, "  %s @ %.0f%%,%.0f%%\n", a.Type, a.X, a.Y)
		fmt.Fprintf(w, "    %s\n", a.Description)
		fmt.Fprintf(w, "    Fix: %s\n", a.Fix)
	}

	critical, minor := res.Counts()
	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "%d critical, %d minor\n", critical, minor)
}

func modeLabel(res critique.Result) string {
	switch res.Mode {
	case critique.ModeAI:
		return "analyzed by " + res.ModelUsed
	case critique.ModeSimulated:
		return "simulated: no AI provider available on the server"
	case critique.ModeMock:
		return "mock: server unreachable, local heuristics"
	default:
		return string(res.Mode)
	}
}

func severityColor(s critique.Severity) *color.Color {
	if s == critique.SeverityCritical {
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgYellow)
}

func printShare(w io.Writer, id string) {
	fmt.Fprintln(w)
	_, _ = color.New(color.FgGreen).Fprintf(w, "Shared as %s\n", id)
}

func printProbe(w io.Writer, r critique.ProbeResult) {
	var c *color.Color
	var label string
	switch r.Status {
	case critique.ProbeAvailable:
		c, label = color.New(color.FgGreen), "available"
	case critique.ProbeInvalidKey:
		c, label = color.New(color.FgRed, color.Bold), "invalid key"
	case critique.ProbeUnavailable:
		c, label = color.New(color.FgYellow), "not available"
	case critique.ProbeForbidden:
		c, label = color.New(color.FgYellow), "no permission"
	default:
		c, label = color.New(color.FgRed), "error"
	}

	fmt.Fprintf(w, "%-28s ", r.Model)
	_, _ = c.Fprint(w, label)
	if r.Detail != "" && r.Status != critique.ProbeAvailable {
		_, _ = color.New(color.FgHiBlack).Fprintf(w, "  %s", r.Detail)
	}
	fmt.Fprintln(w)
}
