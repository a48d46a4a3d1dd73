package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/config"
	"github.com/entrhq/backnav/pkg/metrics"
	"github.com/entrhq/backnav/pkg/types"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// Executor replays a Script against a fresh back press manager
type Executor struct {
	script         *Script
	console        *Logger
	managerLog     backpress.Logger
	recorder       backpress.Recorder
	artifactWriter *ArtifactWriter
}

// Option configures an Executor.
type Option func(*Executor)

// WithConsole sets the console logger. Defaults to a quiet logger.
func WithConsole(l *Logger) Option {
	return func(e *Executor) { e.console = l }
}

// WithManagerLogger sets the logger handed to the manager.
func WithManagerLogger(l backpress.Logger) Option {
	return func(e *Executor) { e.managerLog = l }
}

// WithRecorder adds a recorder that receives every dispatch record next to
// the executor's own tally.
func WithRecorder(r backpress.Recorder) Option {
	return func(e *Executor) { e.recorder = r }
}

// WithArtifacts writes artifacts to dir after the run.
func WithArtifacts(dir string) Option {
	return func(e *Executor) { e.artifactWriter = NewArtifactWriter(dir) }
}

// NewExecutor creates an executor for a validated script
func NewExecutor(script *Script, opts ...Option) (*Executor, error) {
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	e := &Executor{script: script}
	for _, opt := range opts {
		opt(e)
	}
	if e.console == nil {
		e.console = NewLogger(LogLevelQuiet)
	}
	return e, nil
}

// run holds the state of a single replay.
type run struct {
	manager  *backpress.Manager
	callback backpress.Callback
	tally    *metrics.Tally
	log      *callLog
	handlers map[string]*scriptedHandler
	gesture  map[string]bool
	fallback bool
	subs     []*backpress.Subscription
}

// Run replays every step and returns the summary. A failed expectation
// marks the summary failed without returning an error; context
// cancellation stops the replay between steps and is returned.
func (e *Executor) Run(ctx context.Context) (*ExecutionSummary, error) {
	summary := &ExecutionSummary{
		RunID:     uuid.NewString(),
		Script:    e.script.Name,
		Status:    "running",
		StartTime: time.Now(),
	}

	if e.script.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.script.Timeout)
		defer cancel()
	}

	e.console.Header(fmt.Sprintf("Replaying %s", e.scriptLabel()))
	e.console.Verbosef("run id %s", summary.RunID)

	r, err := e.setup()
	if err != nil {
		return e.finish(summary, nil, err)
	}
	defer r.teardown()

	for i, step := range e.script.Steps {
		if err := ctx.Err(); err != nil {
			e.console.Warningf("replay interrupted before step %d: %v", i+1, err)
			return e.finish(summary, r, err)
		}

		res := e.runStep(r, i+1, step)
		summary.Steps = append(summary.Steps, res)
		e.console.StepResult(res)
	}

	return e.finish(summary, r, nil)
}

func (e *Executor) scriptLabel() string {
	if e.script.Name != "" {
		return e.script.Name
	}
	return "script"
}

func (e *Executor) setup() (*run, error) {
	section := config.NewArbiterSection()
	if len(e.script.Arbiter) > 0 {
		if err := section.SetData(e.script.Arbiter); err != nil {
			return nil, fmt.Errorf("invalid arbiter settings: %w", err)
		}
	}

	r := &run{
		tally:    metrics.NewTally(),
		log:      &callLog{},
		handlers: make(map[string]*scriptedHandler, len(e.script.Handlers)),
		gesture:  make(map[string]bool, len(e.script.Handlers)),
	}

	var recorder backpress.Recorder = r.tally
	if e.recorder != nil {
		recorder = metrics.Multi{r.tally, e.recorder}
	}

	opts := config.BuildManagerOptions(section)
	opts = append(opts,
		backpress.WithRecorder(recorder),
		backpress.WithFallback(func() {
			r.log.add("fallback")
			r.fallback = true
		}),
	)
	if e.managerLog != nil {
		opts = append(opts, backpress.WithLogger(e.managerLog))
	}

	r.manager = backpress.NewManager(opts...)
	r.callback = backpress.NewCallback(r.manager, section.PredictiveBack())
	e.console.Verbosef("predictive back: %t", section.PredictiveBack())

	for _, spec := range e.script.Handlers {
		h, err := newScriptedHandler(spec, r.log)
		if err != nil {
			return nil, fmt.Errorf("handler %s: %w", spec.Name, err)
		}
		r.handlers[spec.Name] = h
		r.gesture[spec.Name] = spec.Gesture

		if spec.DismissOnNavigation {
			r.subs = append(r.subs, r.manager.AddSystemNavigationObserver(func() {
				r.log.add("%s.dismissed", h.name)
				h.enabled.Set(backpress.False)
			}))
		}

		if spec.Registered != nil && !*spec.Registered {
			continue
		}
		if err := r.manager.Register(h.asHandler(spec.Gesture), h.typ); err != nil {
			return nil, fmt.Errorf("handler %s: %w", spec.Name, err)
		}
		e.console.Debugf("registered %s as %s", spec.Name, h.typ)
	}

	return r, nil
}

func (r *run) teardown() {
	for _, sub := range r.subs {
		sub.Remove()
	}
	r.manager.Destroy()
}

func (e *Executor) runStep(r *run, index int, step Step) StepResult {
	recordsBefore := r.tally.Len()
	r.fallback = false

	handled, err := e.apply(r, step)

	calls, consumer := r.log.take()
	res := StepResult{
		Index:    index,
		Name:     step.label(),
		Action:   step.Action,
		Handled:  handled,
		Fallback: r.fallback,
		Armed:    r.manager.IsArmed(),
		Calls:    calls,
		Records:  recordStrings(r.tally.Since(recordsBefore)),
		Consumer: consumer,
	}
	if err != nil {
		res.Error = err.Error()
	}
	res.Failures = checkExpect(step.Expect, res)
	res.Passed = len(res.Failures) == 0
	return res
}

// apply performs the step action. Panics from debug assertions are
// returned as errors.
func (e *Executor) apply(r *run, step Step) (handled *bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()

	m := r.manager
	switch step.Action {
	case ActionBack:
		return boolPtr(m.HandleBackPress()), nil

	case ActionGestureStart:
		r.callback.Started(gestureEvent(step))
	case ActionGestureProgress:
		r.callback.Progressed(gestureEvent(step))
	case ActionGestureCancel:
		r.callback.Cancelled()
	case ActionGestureCommit:
		return boolPtr(r.callback.Invoked()), nil

	case ActionEscape:
		return boolPtr(m.HandleEscape(escapeEvent(step)).IsTrue()), nil

	case ActionSetEnabled:
		v, _ := nodeTristate(step.Value, backpress.Unknown)
		r.handlers[step.Handler].enabled.Set(v)
	case ActionRegister:
		h := r.handlers[step.Handler]
		return nil, m.Register(h.asHandler(r.gesture[step.Handler]), h.typ)
	case ActionUnregister:
		return nil, m.Unregister(r.handlers[step.Handler].typ)

	case ActionSystemNavigation:
		m.NotifySystemNavigation()
	case ActionDestroy:
		m.Destroy()
	}
	return nil, nil
}

func (e *Executor) finish(summary *ExecutionSummary, r *run, runErr error) (*ExecutionSummary, error) {
	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)

	if r != nil {
		summary.Records = r.tally.Records()
		summary.Metrics = metricsOf(summary)
	}

	switch {
	case runErr != nil:
		summary.Status = statusFailed
		summary.Error = runErr.Error()
	case len(summary.FailedExpectations()) > 0:
		summary.Status = statusFailed
		summary.Error = fmt.Sprintf("%d expectation(s) failed", len(summary.FailedExpectations()))
	default:
		summary.Status = statusSuccess
	}

	if e.artifactWriter != nil {
		if err := e.artifactWriter.WriteAll(summary); err != nil {
			e.console.Errorf("failed to write artifacts: %v", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			e.console.Verbosef("artifacts written to %s", e.artifactWriter.OutputDir())
		}
	}

	e.console.Summary(summary)
	return summary, runErr
}

func metricsOf(summary *ExecutionSummary) ExecutionMetrics {
	var out ExecutionMetrics
	for _, rec := range summary.Records {
		switch rec.Kind {
		case types.RecordKindSuccess:
			out.Successes++
		case types.RecordKindFailure:
			out.Failures++
		case types.RecordKindEdge:
			out.Edges++
		}
	}
	for _, step := range summary.Steps {
		if step.Fallback {
			out.Fallbacks++
		}
	}
	return out
}

func gestureEvent(step Step) backpress.GestureEvent {
	ev := backpress.GestureEvent{Progress: step.Progress}
	if step.Edge != "" {
		ev.Edge, _ = backpress.ParseEdge(step.Edge)
	}
	return ev
}

func escapeEvent(step Step) backpress.KeyEvent {
	ev := backpress.KeyEvent{Key: backpress.KeyEscape, Repeat: step.Repeat}
	for _, name := range step.Mods {
		mod, _ := backpress.ParseModifier(name)
		ev.Mods |= mod
	}
	return ev
}

func recordStrings(records []types.Record) []string {
	if len(records) == 0 {
		return nil
	}
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.String()
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
