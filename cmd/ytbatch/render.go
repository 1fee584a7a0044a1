package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/ytbatch/internal/batch"
	"github.com/ytget/ytbatch/internal/model"
)

// Styling functions using lipgloss
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))
)

// newBatchBar builds the item-count progress bar for a batch of total URLs
func newBatchBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("items"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}

// renderEvents prints the sink's event stream until the terminal event
// closes it. Log lines go to stdout, the item bar to stderr.
func renderEvents(sink *batch.Sink, total int) {
	bar := newBatchBar(total)

	for ev := range sink.Events() {
		switch ev.Kind {
		case model.EventLog:
			fmt.Println(infoStyle.Render(ev.Message))
		case model.EventStatus:
			// Transfer-level churn, the log lines carry the story
		case model.EventProgress:
			// Per-item transfer fraction, the bar tracks whole items
		case model.EventItemDone:
			bar.Add(1)
			fmt.Println(outcomeLine(ev))
		case model.EventDone:
			// Exit, not Finish: a cancelled batch must not render as full
			bar.Exit()
		}
	}
}

// outcomeLine renders one finished item with its outcome marker
func outcomeLine(ev model.Event) string {
	switch ev.Outcome {
	case model.OutcomeSuccess:
		return successStyle.Render("✅ " + ev.Message)
	case model.OutcomeCancelled:
		return warnStyle.Render("⚠️ " + ev.Message)
	default:
		return errorStyle.Render("❌ " + ev.Message)
	}
}
