package backpress

import "fmt"

// trace collects handler and recorder calls in the order they happen.
type trace struct {
	calls []string
}

func (tr *trace) add(format string, v ...interface{}) {
	tr.calls = append(tr.calls, fmt.Sprintf(format, v...))
}

func (tr *trace) take() []string {
	out := tr.calls
	tr.calls = nil
	return out
}

// fakeHandler is a scripted GestureHandler.
type fakeHandler struct {
	name    string
	enabled *Supplier
	results []Result
	tr      *trace
	onBack  func()
}

func newFake(tr *trace, name string, enabled Tristate, results ...Result) *fakeHandler {
	return &fakeHandler{name: name, enabled: NewSupplier(enabled), results: results, tr: tr}
}

func (f *fakeHandler) EnabledState() *Supplier { return f.enabled }

func (f *fakeHandler) HandleBackPress() Result {
	f.tr.add("%s.back", f.name)
	if f.onBack != nil {
		f.onBack()
	}
	if len(f.results) == 0 {
		return ResultSuccess
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

func (f *fakeHandler) OnBackStarted(ev GestureEvent) {
	f.tr.add("%s.started(%s,%.2f)", f.name, ev.Edge, ev.Progress)
}

func (f *fakeHandler) OnBackProgressed(ev GestureEvent) {
	f.tr.add("%s.progressed(%.2f)", f.name, ev.Progress)
}

func (f *fakeHandler) OnBackCancelled() {
	f.tr.add("%s.cancelled", f.name)
}

// escFake adds dedicated escape behaviour.
type escFake struct {
	*fakeHandler
	toBack bool
	esc    Tristate
}

func (e *escFake) InvokeBackActionOnEscape() bool { return e.toBack }

func (e *escFake) HandleEscPress() Tristate {
	e.tr.add("%s.esc", e.name)
	return e.esc
}

// plainHandler implements only the required Handler methods.
type plainHandler struct {
	enabled *Supplier
	tr      *trace
	name    string
}

func (p *plainHandler) EnabledState() *Supplier { return p.enabled }

func (p *plainHandler) HandleBackPress() Result {
	p.tr.add("%s.back", p.name)
	return ResultSuccess
}

// traceRecorder writes recorder calls into the shared trace.
type traceRecorder struct {
	tr *trace
}

func (r traceRecorder) RecordSuccess(t Type)         { r.tr.add("success:%s", t) }
func (r traceRecorder) RecordFailure(t Type)         { r.tr.add("failure:%s", t) }
func (r traceRecorder) RecordEdge(t Type, edge Edge) { r.tr.add("edge:%s:%s", t, edge) }
