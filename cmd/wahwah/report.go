package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-wah/measure/loudness"
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#A40000")).
				MarginBottom(1)

	reportHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFA500"))

	reportValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00AAAA"))

	reportWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)
)

func renderReport(cli *CLI, sum summary) string {
	var sb strings.Builder

	sb.WriteString(reportTitleStyle.Render("wahwah " + describeMode(cli)))
	sb.WriteString("\n")

	header := fmt.Sprintf("%-4s %10s %10s %10s %10s %10s %11s",
		"ch", "in peak", "in rms", "out peak", "out rms", "out dc", "centroid")
	sb.WriteString(reportHeaderStyle.Render(header))
	sb.WriteString("\n")

	for ch, r := range sum.Channels {
		row := fmt.Sprintf("%-4d %10s %10s %10s %10s %10.2e %8.0f Hz",
			ch,
			formatDB(r.In.Peak_dB), formatDB(r.In.RMS_dB),
			formatDB(r.Out.Peak_dB), formatDB(r.Out.RMS_dB),
			r.Out.DC, r.CentroidHz,
		)
		sb.WriteString(reportValueStyle.Render(row))

		if r.Out.Clipped > 0 {
			sb.WriteString(" ")
			sb.WriteString(reportWarnStyle.Render(fmt.Sprintf("%d clipped", r.Out.Clipped)))
		}
		sb.WriteString("\n")
	}

	loud := fmt.Sprintf("loudness %s -> %s", formatLUFS(sum.LoudnessIn), formatLUFS(sum.LoudnessOut))
	sb.WriteString(reportHeaderStyle.Render(loud))
	sb.WriteString("\n")

	return sb.String()
}

func describeMode(cli *CLI) string {
	if cli.Mode == "wavelet" {
		return fmt.Sprintf("wavelet %s level %d resonance %g", cli.Wavelet, cli.Level, cli.Resonance)
	}

	control := "envelope"
	switch cli.Pedal {
	case "auto":
		control = fmt.Sprintf("auto pedal %g Hz", cli.PedalRate)
	case "manual":
		control = fmt.Sprintf("manual pedal %.2f", cli.PedalPosition)
	}

	return fmt.Sprintf("%g-%g Hz q %g, %s", cli.MinFreq, cli.MaxFreq, cli.Q, control)
}

func formatLUFS(lufs float64) string {
	if lufs <= loudness.SilenceLUFS {
		return "silent"
	}

	return fmt.Sprintf("%.1f LUFS", lufs)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf dB"
	}

	return fmt.Sprintf("%.1f dB", db)
}
