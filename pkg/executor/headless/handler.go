package headless

import (
	"fmt"

	"github.com/entrhq/backnav/pkg/backpress"
)

// callLog collects the calls made during one step.
type callLog struct {
	calls    []string
	consumer string
}

func (c *callLog) add(format string, v ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, v...))
}

func (c *callLog) take() ([]string, string) {
	calls, consumer := c.calls, c.consumer
	c.calls, c.consumer = nil, ""
	return calls, consumer
}

// scriptedHandler answers back and escape presses from queued results.
type scriptedHandler struct {
	name    string
	typ     backpress.Type
	enabled *backpress.Supplier
	results []backpress.Result
	escape  *escapeQueue
	log     *callLog
}

type escapeQueue struct {
	invokeBack bool
	results    []backpress.Tristate
}

// gestureHandler is a scriptedHandler that also observes gesture phases.
type gestureHandler struct {
	*scriptedHandler
}

func newScriptedHandler(spec HandlerSpec, log *callLog) (*scriptedHandler, error) {
	typ, err := backpress.ParseType(spec.Type)
	if err != nil {
		return nil, err
	}
	enabled, err := nodeTristate(spec.Enabled, backpress.True)
	if err != nil {
		return nil, err
	}

	h := &scriptedHandler{
		name:    spec.Name,
		typ:     typ,
		enabled: backpress.NewSupplier(enabled),
		log:     log,
	}
	for _, r := range spec.Results {
		res, err := backpress.ParseResult(r)
		if err != nil {
			return nil, err
		}
		h.results = append(h.results, res)
	}
	if spec.Escape != nil {
		h.escape = &escapeQueue{invokeBack: spec.Escape.InvokeBackAction}
		for _, n := range spec.Escape.Results {
			v, err := nodeTristate(n, backpress.True)
			if err != nil {
				return nil, err
			}
			h.escape.results = append(h.escape.results, v)
		}
	}
	return h, nil
}

// asHandler returns the handler in the shape the manager should see.
func (h *scriptedHandler) asHandler(gesture bool) backpress.Handler {
	if gesture {
		return &gestureHandler{h}
	}
	return h
}

func (h *scriptedHandler) EnabledState() *backpress.Supplier { return h.enabled }

func (h *scriptedHandler) HandleBackPress() backpress.Result {
	h.log.add("%s.back", h.name)
	res := backpress.ResultSuccess
	if len(h.results) > 0 {
		res = h.results[0]
		if len(h.results) > 1 {
			h.results = h.results[1:]
		}
	}
	if res == backpress.ResultSuccess {
		h.log.consumer = h.name
	}
	return res
}

// InvokeBackActionOnEscape routes escape to HandleBackPress when the script
// declares no escape block.
func (h *scriptedHandler) InvokeBackActionOnEscape() bool {
	return h.escape == nil || h.escape.invokeBack
}

func (h *scriptedHandler) HandleEscPress() backpress.Tristate {
	h.log.add("%s.esc", h.name)
	res := backpress.True
	if q := h.escape; q != nil && len(q.results) > 0 {
		res = q.results[0]
		if len(q.results) > 1 {
			q.results = q.results[1:]
		}
	}
	if res.IsTrue() {
		h.log.consumer = h.name
	}
	return res
}

func (g *gestureHandler) OnBackStarted(ev backpress.GestureEvent) {
	g.log.add("%s.started(%s,%.2f)", g.name, ev.Edge, ev.Progress)
}

func (g *gestureHandler) OnBackProgressed(ev backpress.GestureEvent) {
	g.log.add("%s.progressed(%.2f)", g.name, ev.Progress)
}

func (g *gestureHandler) OnBackCancelled() {
	g.log.add("%s.cancelled", g.name)
}
