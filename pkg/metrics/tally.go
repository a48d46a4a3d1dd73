package metrics

import (
	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/types"
)

// Tally keeps every record in emission order plus per-type counts.
// It is not safe for concurrent use, matching the manager it observes.
type Tally struct {
	records   []types.Record
	successes map[backpress.Type]int
	failures  map[backpress.Type]int
	onRecord  func(types.Record)
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{
		successes: make(map[backpress.Type]int),
		failures:  make(map[backpress.Type]int),
	}
}

// OnRecord sets a callback run after each record is appended.
func (t *Tally) OnRecord(fn func(types.Record)) {
	t.onRecord = fn
}

// RecordSuccess implements backpress.Recorder.
func (t *Tally) RecordSuccess(typ backpress.Type) {
	t.successes[typ]++
	t.append(types.NewSuccessRecord(typ.String()))
}

// RecordFailure implements backpress.Recorder.
func (t *Tally) RecordFailure(typ backpress.Type) {
	t.failures[typ]++
	t.append(types.NewFailureRecord(typ.String()))
}

// RecordEdge implements backpress.Recorder.
func (t *Tally) RecordEdge(typ backpress.Type, edge backpress.Edge) {
	t.append(types.NewEdgeRecord(typ.String(), edge.String()))
}

func (t *Tally) append(r types.Record) {
	t.records = append(t.records, r)
	if t.onRecord != nil {
		t.onRecord(r)
	}
}

// Records returns a copy of all records in order.
func (t *Tally) Records() []types.Record {
	out := make([]types.Record, len(t.records))
	copy(out, t.records)
	return out
}

// Since returns the records appended after the first n.
func (t *Tally) Since(n int) []types.Record {
	if n >= len(t.records) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	out := make([]types.Record, len(t.records)-n)
	copy(out, t.records[n:])
	return out
}

// Len returns the number of records.
func (t *Tally) Len() int {
	return len(t.records)
}

// Successes returns the success count for typ.
func (t *Tally) Successes(typ backpress.Type) int {
	return t.successes[typ]
}

// Failures returns the failure count for typ.
func (t *Tally) Failures(typ backpress.Type) int {
	return t.failures[typ]
}

// Totals returns the overall success and failure counts.
func (t *Tally) Totals() (successes, failures int) {
	for _, n := range t.successes {
		successes += n
	}
	for _, n := range t.failures {
		failures += n
	}
	return successes, failures
}

// Reset drops every record and count.
func (t *Tally) Reset() {
	t.records = nil
	t.successes = make(map[backpress.Type]int)
	t.failures = make(map[backpress.Type]int)
}
