package metrics

import "github.com/entrhq/backnav/pkg/backpress"

// Multi fans each record out to every recorder in order.
type Multi []backpress.Recorder

// RecordSuccess implements backpress.Recorder.
func (m Multi) RecordSuccess(t backpress.Type) {
	for _, r := range m {
		r.RecordSuccess(t)
	}
}

// RecordFailure implements backpress.Recorder.
func (m Multi) RecordFailure(t backpress.Type) {
	for _, r := range m {
		r.RecordFailure(t)
	}
}

// RecordEdge implements backpress.Recorder.
func (m Multi) RecordEdge(t backpress.Type, edge backpress.Edge) {
	for _, r := range m {
		r.RecordEdge(t, edge)
	}
}
