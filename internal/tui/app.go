package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/bandsintown/internal/tracker"
	"github.com/rivo/tview"
)

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to redraw relative times
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 30 * time.Second,
	}
}

// Checker checks the watchlist once or periodically.
// *tracker.Tracker implements it.
type Checker interface {
	Check(ctx context.Context) ([]tracker.Result, error)
	Watch(ctx context.Context, reports chan<- tracker.Report) error
}

// App is the TUI application for displaying the watchlist
type App struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView

	config  Config
	checker Checker

	// queueDraw runs f on the event loop and redraws
	queueDraw func(f func())

	// Mutex protects state shared by the update goroutines and the
	// key handler.
	mu sync.Mutex

	// Current state (guarded by mu)
	results   []tracker.Result
	lastCheck time.Time
	lastErr   error
	checking  bool

	// Last-rendered status for change detection
	lastStatus string

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new TUI application with default config
func New(checker Checker) *App {
	return NewWithConfig(checker, DefaultConfig())
}

// NewWithConfig creates a new TUI application with the given config
func NewWithConfig(checker Checker, cfg Config) *App {
	a := &App{
		app:      tview.NewApplication(),
		config:   cfg,
		checker:  checker,
		checking: true,
	}
	a.queueDraw = func(f func()) { a.app.QueueUpdateDraw(f) }
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.table = tview.NewTable().
		SetFixed(1, 0).
		SetSelectable(true, false)
	a.table.SetBorder(true).
		SetTitle(" Watchlist ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  r:refresh  ↑↓:scroll[-]")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.status, 1, 1, false).
		AddItem(help, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)

	a.renderTable(nil)
	a.status.SetText(statusText(nil, time.Time{}, nil, true, time.Now()))
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	case 'r', 'R':
		a.refreshNow()
		return nil
	}
	return event
}

// Run starts the TUI and the periodic watchlist check
func (a *App) Run(ctx context.Context) error {
	a.ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	go a.handleUpdates(a.ctx)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleUpdates feeds check results into the display. Checks come from the
// checker's watch loop; a ticker redraws the status line so relative times
// stay current. If the watch loop stops, its error is shown and manual
// refreshes keep working.
func (a *App) handleUpdates(ctx context.Context) {
	reports := make(chan tracker.Report)
	watchDone := make(chan error, 1)
	go func() {
		watchDone <- a.checker.Watch(ctx, reports)
	}()

	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = DefaultConfig().RefreshRate
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case report := <-reports:
			a.setResults(report.Results, report.Err)
		case err := <-watchDone:
			watchDone = nil
			if ctx.Err() == nil {
				if err == nil {
					err = fmt.Errorf("watch loop stopped")
				}
				a.setResults(nil, fmt.Errorf("automatic checks stopped: %w", err))
			}
		case <-ticker.C:
			a.refresh(false)
		}
	}
}

// refreshNow runs a check outside the watch schedule unless one is running
func (a *App) refreshNow() {
	a.mu.Lock()
	if a.checking || a.ctx == nil {
		a.mu.Unlock()
		return
	}
	a.checking = true
	ctx := a.ctx
	// Key handlers run on the event loop, so the widget is updated directly
	a.lastStatus = statusText(a.results, a.lastCheck, a.lastErr, true, time.Now())
	a.status.SetText(a.lastStatus)
	a.mu.Unlock()

	go func() {
		results, err := a.checker.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		a.setResults(results, err)
	}()
}

// setResults stores the outcome of a check and redraws
func (a *App) setResults(results []tracker.Result, err error) {
	a.mu.Lock()
	a.checking = false
	a.lastErr = err
	if err == nil {
		a.results = results
		a.lastCheck = time.Now()
	}
	a.mu.Unlock()

	a.refresh(err == nil)
}

// refresh updates the UI components. The table is only rebuilt when
// withTable is set.
func (a *App) refresh(withTable bool) {
	a.queueDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		if withTable {
			a.renderTable(a.results)
		}

		text := statusText(a.results, a.lastCheck, a.lastErr, a.checking, time.Now())
		if text != a.lastStatus {
			a.lastStatus = text
			a.status.SetText(text)
		}
	})
}

// renderTable replaces the table contents with results
func (a *App) renderTable(results []tracker.Result) {
	a.table.Clear()

	for col, title := range []string{"Artist", "Upcoming", "Next show", "Status"} {
		a.table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	for i, row := range buildRows(results) {
		for col, text := range row.cells {
			cell := tview.NewTableCell(tview.Escape(text)).SetExpansion(1)
			if col == 3 {
				cell.SetTextColor(row.color)
			}
			a.table.SetCell(i+1, col, cell)
		}
	}
}

type tableRow struct {
	cells [4]string
	color tcell.Color
}

// buildRows turns check results into table rows
func buildRows(results []tracker.Result) []tableRow {
	rows := make([]tableRow, 0, len(results))
	for _, r := range results {
		name := r.Entry.Name
		if name == "" {
			name = "mbid " + r.Entry.MBID
		}

		row := tableRow{color: tcell.ColorGray}
		row.cells[0] = name

		switch {
		case r.Err != nil:
			row.cells[1] = "-"
			row.cells[3] = "error"
			row.color = tcell.ColorRed
		case r.NewTour:
			row.cells[1] = strconv.Itoa(len(r.Events))
			row.cells[3] = "new tour"
			row.color = tcell.ColorGreen
		case len(r.Events) > 0:
			row.cells[1] = strconv.Itoa(len(r.Events))
			row.cells[3] = "on tour"
			row.color = tcell.ColorWhite
		default:
			row.cells[1] = "0"
			row.cells[3] = "off"
		}

		if r.Err == nil && len(r.Events) > 0 {
			next := r.Events[0]
			row.cells[2] = next.Datetime.Format("2006-01-02")
			if next.Venue != nil && next.Venue.City != "" {
				row.cells[2] += " " + next.Venue.City
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// statusText renders the status line below the table
func statusText(results []tracker.Result, lastCheck time.Time, lastErr error, checking bool, now time.Time) string {
	if checking {
		return "[yellow]Checking watchlist...[-]"
	}
	if lastErr != nil {
		return fmt.Sprintf("[red]Check failed: %s[-]", tview.Escape(lastErr.Error()))
	}
	if lastCheck.IsZero() {
		return "[gray]Not checked yet[-]"
	}

	touring, failed := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case len(r.Events) > 0:
			touring++
		}
	}

	text := fmt.Sprintf("%d artists, %d on tour", len(results), touring)
	if failed > 0 {
		text += fmt.Sprintf(", [red]%d failed[-]", failed)
	}
	return text + fmt.Sprintf("  [gray]checked %s[-]", formatAge(now.Sub(lastCheck)))
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// formatAge formats the time since a check in the largest whole unit
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
