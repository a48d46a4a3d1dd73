package tui

import (
	"fmt"

	"github.com/entrhq/backnav/pkg/backpress"
)

// feature is one piece of browser UI that competes for back presses. It
// previews gestures it is pinned for and may opt into escape handling.
type feature struct {
	name    string
	typ     backpress.Type
	enabled *backpress.Supplier

	// back runs on a back press; esc, when set, owns escape presses
	back func() backpress.Result
	esc  func() backpress.Tristate

	previewing bool
	preview    float64
	edge       backpress.Edge

	log func(format string, v ...interface{})
}

func newFeature(name string, typ backpress.Type, initial backpress.Tristate, log func(string, ...interface{})) *feature {
	return &feature{
		name:    name,
		typ:     typ,
		enabled: backpress.NewSupplier(initial),
		log:     log,
	}
}

func (f *feature) EnabledState() *backpress.Supplier { return f.enabled }

func (f *feature) HandleBackPress() backpress.Result {
	f.previewing = false
	res := backpress.ResultIgnored
	if f.back != nil {
		res = f.back()
	}
	f.log("%s: back → %s", f.name, res)
	return res
}

func (f *feature) InvokeBackActionOnEscape() bool { return f.esc == nil }

func (f *feature) HandleEscPress() backpress.Tristate {
	res := f.esc()
	f.log("%s: esc → %s", f.name, res)
	return res
}

func (f *feature) OnBackStarted(ev backpress.GestureEvent) {
	f.previewing, f.preview, f.edge = true, ev.Progress, ev.Edge
	f.log("%s: swipe from %s edge", f.name, ev.Edge)
}

func (f *feature) OnBackProgressed(ev backpress.GestureEvent) {
	f.preview = ev.Progress
}

func (f *feature) OnBackCancelled() {
	f.previewing, f.preview = false, 0
	f.log("%s: swipe cancelled", f.name)
}

// open reports whether the feature is currently shown.
func (f *feature) open() bool {
	return f.enabled.Get().IsTrue()
}

func (f *feature) setOpen(open bool) {
	f.enabled.SetBool(open)
	if !open {
		f.previewing, f.preview = false, 0
	}
}

// browser is the demo's UI state: a tab history and the features layered
// over it, in back press priority order.
type browser struct {
	bubble     *feature
	fullscreen *feature
	sheet      *feature
	find       *feature
	tabs       *feature
	minimize   *feature

	pages      []string
	nextPage   int
	sheetLock  bool
	onMinimize func()
}

func newBrowser(log func(string, ...interface{})) *browser {
	b := &browser{
		bubble:     newFeature("text bubble", backpress.TypeTextBubble, backpress.False, log),
		fullscreen: newFeature("fullscreen", backpress.TypeFullscreen, backpress.False, log),
		sheet:      newFeature("bottom sheet", backpress.TypeBottomSheet, backpress.False, log),
		find:       newFeature("find toolbar", backpress.TypeFindToolbar, backpress.False, log),
		tabs:       newFeature("tab history", backpress.TypeTabHistory, backpress.False, log),
		minimize:   newFeature("minimize", backpress.TypeMinimizeAppAndCloseTab, backpress.Unknown, log),
		pages:      []string{"start page"},
		nextPage:   1,
	}

	for _, f := range []*feature{b.bubble, b.fullscreen, b.find} {
		f := f
		f.back = func() backpress.Result {
			f.setOpen(false)
			return backpress.ResultSuccess
		}
	}

	b.sheet.back = func() backpress.Result {
		if b.sheetLock {
			return backpress.ResultFailure
		}
		b.sheet.setOpen(false)
		return backpress.ResultSuccess
	}
	b.sheet.esc = func() backpress.Tristate {
		if b.sheetLock {
			return backpress.False
		}
		b.sheet.setOpen(false)
		return backpress.True
	}

	b.find.esc = func() backpress.Tristate {
		b.find.setOpen(false)
		return backpress.True
	}

	b.tabs.back = func() backpress.Result {
		if len(b.pages) < 2 {
			return backpress.ResultIgnored
		}
		b.pages = b.pages[:len(b.pages)-1]
		b.tabs.enabled.SetBool(len(b.pages) > 1)
		return backpress.ResultSuccess
	}

	b.minimize.back = func() backpress.Result {
		if b.onMinimize != nil {
			b.onMinimize()
		}
		return backpress.ResultSuccess
	}

	return b
}

// features returns every feature in priority order.
func (b *browser) features() []*feature {
	return []*feature{b.bubble, b.fullscreen, b.sheet, b.find, b.tabs, b.minimize}
}

// navigate pushes a new page onto the tab history.
func (b *browser) navigate() string {
	b.nextPage++
	page := fmt.Sprintf("page %d", b.nextPage)
	b.pages = append(b.pages, page)
	b.tabs.enabled.SetBool(len(b.pages) > 1)
	return page
}

func (b *browser) currentPage() string {
	return b.pages[len(b.pages)-1]
}

func (b *browser) toggleMinimize() backpress.Tristate {
	next := backpress.True
	if b.minimize.enabled.Get().IsTrue() {
		next = backpress.Unknown
	}
	b.minimize.enabled.Set(next)
	return next
}
