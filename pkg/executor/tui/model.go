package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/config"
	"github.com/entrhq/backnav/pkg/metrics"
)

// panelMode selects what the side panel shows.
type panelMode int

const (
	panelRegistry panelMode = iota
	panelRecords
	panelConfig
	panelCount
)

func (p panelMode) String() string {
	switch p {
	case panelRecords:
		return "records"
	case panelConfig:
		return "config"
	default:
		return "registry"
	}
}

const maxEvents = 500

// model represents the state of the TUI application.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	help     help.Model
	progress progress.Model

	// Arbitration
	manager  *backpress.Manager
	callback backpress.Callback
	tally    *metrics.Tally
	browser  *browser
	navSub   *backpress.Subscription

	// Configuration
	arbiter *config.ArbiterSection
	keysCfg *config.KeysSection
	keys    keyMap

	// Gesture input
	edge        backpress.Edge
	swipe       float64
	swipeActive bool

	// UI state
	events []string
	panel  panelMode
	status string

	// Window dimensions
	width  int
	height int
	ready  bool

	// Application state
	quitting   bool
	quitReason string
}

// Options configures the demo.
type Options struct {
	Arbiter  *config.ArbiterSection
	Keys     *config.KeysSection
	Recorder backpress.Recorder
	Logger   backpress.Logger
}

func newModel(opts Options) *model {
	arbiter := opts.Arbiter
	if arbiter == nil {
		arbiter = config.NewArbiterSection()
	}

	m := &model{
		help:     help.New(),
		progress: progress.New(progress.WithGradient(string(coralPink), string(salmonPink)), progress.WithoutPercentage()),
		viewport: viewport.New(80, 8),
		tally:    metrics.NewTally(),
		arbiter:  arbiter,
		keysCfg:  opts.Keys,
		keys:     newKeyMap(opts.Keys),
	}

	var recorder backpress.Recorder = m.tally
	if opts.Recorder != nil {
		recorder = metrics.Multi{m.tally, opts.Recorder}
	}

	mopts := config.BuildManagerOptions(arbiter)
	mopts = append(mopts,
		backpress.WithRecorder(recorder),
		backpress.WithFallback(func() {
			m.logEvent("fallback: nothing left to go back to")
			m.quit("fallback")
		}),
	)
	if opts.Logger != nil {
		mopts = append(mopts, backpress.WithLogger(opts.Logger))
	}
	m.manager = backpress.NewManager(mopts...)
	m.callback = backpress.NewCallback(m.manager, arbiter.PredictiveBack())

	m.browser = newBrowser(m.logEvent)
	m.browser.onMinimize = func() { m.quit("minimized") }
	for _, f := range m.browser.features() {
		if err := m.manager.Register(f, f.typ); err != nil {
			m.logEvent("register %s: %v", f.name, err)
		}
	}

	// The OS dismissing back on its own closes transient sheets.
	m.navSub = m.manager.AddSystemNavigationObserver(func() {
		if m.browser.sheet.open() {
			m.browser.sheet.setOpen(false)
			m.logEvent("bottom sheet: dismissed by system navigation")
		}
	})

	m.logEvent("ready, %s callback", callbackName(m.callback))
	return m
}

func callbackName(cb backpress.Callback) string {
	if cb.Predictive() {
		return "predictive"
	}
	return "legacy"
}

// logEvent appends a timestamped line to the event log.
func (m *model) logEvent(format string, v ...interface{}) {
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, v...))
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	m.viewport.SetContent(strings.Join(m.events, "\n"))
	m.viewport.GotoBottom()
}

// quit marks the program for exit once the current message is handled.
func (m *model) quit(reason string) {
	if m.quitting {
		return
	}
	m.quitting = true
	m.quitReason = reason
}

// teardown releases every manager subscription.
func (m *model) teardown() {
	m.navSub.Remove()
	m.manager.Destroy()
}
