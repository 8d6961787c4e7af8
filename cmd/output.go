package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jfmyers9/bandsintown/internal/config"
	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/mattn/go-runewidth"
)

// eventView is the data passed to event format templates. It embeds the
// event and adds fields that are awkward to compute inside a template.
type eventView struct {
	bandsintown.Event
	Lineup string // performing artists joined with ", "
	Where  string // "Venue, City, Region"
}

func newEventView(event bandsintown.Event) eventView {
	names := make([]string, 0, len(event.Artists))
	for _, a := range event.Artists {
		names = append(names, a.Name)
	}

	view := eventView{Event: event, Lineup: strings.Join(names, ", ")}
	if event.Venue == nil {
		// Templates may dereference .Venue fields
		view.Venue = &bandsintown.Venue{}
	} else {
		view.Where = joinNonEmpty(", ", event.Venue.Name, event.Venue.City, event.Venue.Region)
	}
	return view
}

// formatEvent applies the template to the event data
func formatEvent(event bandsintown.Event, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	view := newEventView(event)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, &view); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// writeEvents prints one formatted line per event
func writeEvents(w io.Writer, events []bandsintown.Event, templateStr string) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No upcoming events")
		return err
	}

	for _, event := range events {
		line, err := formatEvent(event, templateStr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeTable prints rows with every column but the last padded to width
func writeTable(w io.Writer, width int, rows [][]string) error {
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cell = padToWidth(cell, width)
			}
			cells[i] = cell
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// columnWidth is the configured table column width, or 30 when unset
func columnWidth(cfg *config.Config) int {
	if cfg.OutputWidth > 0 {
		return cfg.OutputWidth
	}
	return 30
}

// formatLastChecked renders the time of the last watchlist check
func formatLastChecked(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Wide runes may leave the truncated text one column short
		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
