package initializer

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/vmunteanu/mdbank/pkg/config"
)

var levelColors = map[log.Level]string{
	log.DebugLevel: "#7E57C2",
	log.InfoLevel:  "#04B575",
	log.WarnLevel:  "#EE6FF8",
	log.ErrorLevel: "#FF6B6B",
}

// setupLogger builds a charmbracelet/log logger from the Log section of the
// config and exposes it through the slog API the services expect.
func setupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	for level, hex := range levelColors {
		color := lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}
	keyColor := lipgloss.AdaptiveColor{Light: levelColors[log.DebugLevel], Dark: levelColors[log.DebugLevel]}
	for _, key := range []string{"error", "context", "prefix", "time"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	return slog.New(logger)
}
