package headless

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents the logging verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only critical information (errors, warnings, final summary)
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows one line per step (default)
	LogLevelNormal
	// LogLevelVerbose adds handler calls and records per step
	LogLevelVerbose
	// LogLevelDebug shows all internal details for debugging
	LogLevelDebug
)

// Logger prints replay progress to a terminal
type Logger struct {
	level  LogLevel
	writer io.Writer

	// ANSI color codes
	colorReset     string
	colorGreen     string
	colorCyan      string
	colorSalmon    string
	colorYellow    string
	colorRed       string
	colorGray      string
	colorBoldGreen string
	colorBoldRed   string
	colorBoldWhite string
}

// NewLogger creates a logger writing to stdout
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(level, os.Stdout)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level:          level,
		writer:         w,
		colorReset:     "\033[0m",
		colorGreen:     "\033[32m",
		colorCyan:      "\033[36m",
		colorSalmon:    "\033[38;5;217m", // Salmon pink #FFB3BA
		colorYellow:    "\033[33m",
		colorRed:       "\033[31m",
		colorGray:      "\033[90m",
		colorBoldGreen: "\033[1;32m",
		colorBoldRed:   "\033[1;31m",
		colorBoldWhite: "\033[1;37m",
	}
}

// Level returns the logger's verbosity.
func (l *Logger) Level() LogLevel {
	return l.level
}

// Header prints a prominent header message
func (l *Logger) Header(message string) {
	if l.level >= LogLevelNormal {
		fmt.Fprintf(l.writer, "\n%s%s%s\n", l.colorBoldWhite, strings.Repeat("=", 70), l.colorReset)
		fmt.Fprintf(l.writer, "%s  %s%s\n", l.colorBoldWhite, message, l.colorReset)
		fmt.Fprintf(l.writer, "%s%s%s\n", l.colorBoldWhite, strings.Repeat("=", 70), l.colorReset)
	}
}

// Successf prints a success message with checkmark
func (l *Logger) Successf(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s✓ %s%s\n", l.colorBoldGreen, msg, l.colorReset)
	}
}

// Infof prints an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s%s%s\n", l.colorSalmon, msg, l.colorReset)
	}
}

// Warningf prints a warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s⚠ Warning: %s%s\n", l.colorYellow, msg, l.colorReset)
}

// Errorf prints an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s✗ Error: %s%s\n", l.colorBoldRed, msg, l.colorReset)
}

// Verbosef prints detailed information (only in verbose mode)
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LogLevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s→ %s%s\n", l.colorGray, msg, l.colorReset)
	}
}

// Debugf prints debug information (only in debug mode)
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s[DEBUG] %s%s\n", l.colorGray, msg, l.colorReset)
	}
}

// Warnf lets the logger serve as the manager's logger.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warningf(format, args...)
}

// StepResult prints one step according to the verbosity
func (l *Logger) StepResult(res StepResult) {
	switch l.level {
	case LogLevelQuiet:
		// Only failures in quiet mode
		if !res.Passed {
			l.printStepLine(res)
			l.printFailures(res)
		}
	case LogLevelNormal:
		l.printStepLine(res)
		l.printFailures(res)
	case LogLevelVerbose, LogLevelDebug:
		l.printStepLine(res)
		if len(res.Calls) > 0 {
			fmt.Fprintf(l.writer, "%s    calls: %s%s\n", l.colorGray, strings.Join(res.Calls, " → "), l.colorReset)
		}
		if len(res.Records) > 0 {
			fmt.Fprintf(l.writer, "%s    records: %s%s\n", l.colorGray, strings.Join(res.Records, ", "), l.colorReset)
		}
		if res.Error != "" {
			fmt.Fprintf(l.writer, "%s    error: %s%s\n", l.colorGray, res.Error, l.colorReset)
		}
		l.printFailures(res)
	}
}

func (l *Logger) printStepLine(res StepResult) {
	mark, color := "✓", l.colorGreen
	if !res.Passed {
		mark, color = "✗", l.colorBoldRed
	}

	outcome := ""
	if res.Handled != nil {
		outcome = fmt.Sprintf(" handled=%t", *res.Handled)
	}
	if res.Fallback {
		outcome += " fallback"
	}
	fmt.Fprintf(l.writer, "%s  %s [%d] %s%s%s\n", color, mark, res.Index, res.Name, outcome, l.colorReset)
}

func (l *Logger) printFailures(res StepResult) {
	for _, f := range res.Failures {
		fmt.Fprintf(l.writer, "%s      %s%s\n", l.colorRed, f, l.colorReset)
	}
}

// Summary prints a final execution summary
func (l *Logger) Summary(summary *ExecutionSummary) {
	l.printSummaryHeader()
	l.printStatus(summary.Status)
	l.printScriptAndDuration(summary)
	l.printMetrics(summary)
	l.printError(summary)
	l.printSummaryFooter()
}

func (l *Logger) printSummaryHeader() {
	fmt.Fprintln(l.writer)
	fmt.Fprintf(l.writer, "%s%s%s\n", l.colorBoldWhite, strings.Repeat("=", 70), l.colorReset)
	fmt.Fprintf(l.writer, "%s  REPLAY SUMMARY%s\n", l.colorBoldWhite, l.colorReset)
	fmt.Fprintf(l.writer, "%s%s%s\n", l.colorBoldWhite, strings.Repeat("=", 70), l.colorReset)
}

func (l *Logger) printStatus(status string) {
	fmt.Fprint(l.writer, "  Status: ")
	switch status {
	case statusSuccess:
		fmt.Fprintf(l.writer, "%s✓ SUCCESS%s\n", l.colorBoldGreen, l.colorReset)
	case statusFailed:
		fmt.Fprintf(l.writer, "%s✗ FAILED%s\n", l.colorBoldRed, l.colorReset)
	default:
		fmt.Fprintln(l.writer, status)
	}
}

func (l *Logger) printScriptAndDuration(summary *ExecutionSummary) {
	fmt.Fprintf(l.writer, "  Script: %s\n", summary.Script)
	fmt.Fprintf(l.writer, "  Steps: %d\n", len(summary.Steps))
	fmt.Fprintf(l.writer, "  Duration: %s\n", summary.Duration.Round(time.Millisecond))
}

func (l *Logger) printMetrics(summary *ExecutionSummary) {
	if l.level < LogLevelNormal {
		return
	}

	m := summary.Metrics
	fmt.Fprintf(l.writer, "\n  📊 Metrics:\n")
	fmt.Fprintf(l.writer, "    Successes: %d\n", m.Successes)
	fmt.Fprintf(l.writer, "    Failures: %d\n", m.Failures)
	if m.Edges > 0 {
		fmt.Fprintf(l.writer, "    Edges: %d\n", m.Edges)
	}
	fmt.Fprintf(l.writer, "    Fallbacks: %d\n", m.Fallbacks)
}

func (l *Logger) printError(summary *ExecutionSummary) {
	if summary.Error == "" {
		return
	}

	fmt.Fprintln(l.writer)
	fmt.Fprintf(l.writer, "%s  Error Details:%s\n", l.colorBoldRed, l.colorReset)
	fmt.Fprintf(l.writer, "%s    %s%s\n", l.colorRed, summary.Error, l.colorReset)
}

func (l *Logger) printSummaryFooter() {
	fmt.Fprintf(l.writer, "%s%s%s\n", l.colorBoldWhite, strings.Repeat("=", 70), l.colorReset)
	fmt.Fprintln(l.writer)
}

// ParseLogLevel converts a verbosity name to a LogLevel
func ParseLogLevel(level string) (LogLevel, error) {
	switch level {
	case "quiet":
		return LogLevelQuiet, nil
	case "", "normal":
		return LogLevelNormal, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelNormal, fmt.Errorf("invalid verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", level)
	}
}
