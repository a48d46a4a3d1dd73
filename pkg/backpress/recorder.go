package backpress

// Recorder receives dispatch instrumentation. The manager owns no counting.
type Recorder interface {
	RecordSuccess(t Type)
	RecordFailure(t Type)
	RecordEdge(t Type, edge Edge)
}

// NopRecorder discards every record.
type NopRecorder struct{}

func (NopRecorder) RecordSuccess(Type)    {}
func (NopRecorder) RecordFailure(Type)    {}
func (NopRecorder) RecordEdge(Type, Edge) {}

// Logger is the subset of a leveled logger used by the manager.
// *logging.Logger satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
