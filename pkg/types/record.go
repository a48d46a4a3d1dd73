package types

import "time"

// RecordKind defines the type of instrumentation record emitted by the arbiter.
type RecordKind string

const (
	RecordKindSuccess RecordKind = "success" // RecordKindSuccess indicates a handler consumed a back press.
	RecordKindFailure RecordKind = "failure" // RecordKindFailure indicates an enabled handler failed to consume a back press.
	RecordKindEdge    RecordKind = "edge"    // RecordKindEdge indicates the edge a committed gesture started from.
)

// Record is one instrumentation event, in the order the arbiter emitted it.
type Record struct {
	// At is when the record was taken.
	At time.Time `json:"at"`

	// Kind indicates the kind of record.
	Kind RecordKind `json:"kind"`

	// Handler is the snake_case handler type name.
	Handler string `json:"handler"`

	// Edge is the gesture edge, only set for edge records.
	Edge string `json:"edge,omitempty"`
}

// NewSuccessRecord creates a success record for the given handler type.
func NewSuccessRecord(handler string) Record {
	return Record{At: time.Now(), Kind: RecordKindSuccess, Handler: handler}
}

// NewFailureRecord creates a failure record for the given handler type.
func NewFailureRecord(handler string) Record {
	return Record{At: time.Now(), Kind: RecordKindFailure, Handler: handler}
}

// NewEdgeRecord creates an edge record for the given handler type and edge.
func NewEdgeRecord(handler, edge string) Record {
	return Record{At: time.Now(), Kind: RecordKindEdge, Handler: handler, Edge: edge}
}

// String renders the record as "kind:handler" or "edge:handler:left".
func (r Record) String() string {
	if r.Kind == RecordKindEdge {
		return string(r.Kind) + ":" + r.Handler + ":" + r.Edge
	}
	return string(r.Kind) + ":" + r.Handler
}
