// Package tui provides an interactive terminal demo of the back press
// arbiter: a small browser whose text bubble, sheet, fullscreen, find bar,
// tab history and minimize action all compete for the back key, escape and
// simulated predictive swipes.
//
// The TUI codebase is split into multiple files:
// - executor.go: Executor and program lifecycle
// - model.go: Core model structure and manager wiring
// - features.go: Browser features registered as back press handlers
// - keys.go: Key bindings built from the keys config section
// - update.go: Bubble Tea Update function and key handling
// - view.go: Bubble Tea View function and rendering
// - highlight.go: Config panel rendering
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Executor runs the interactive demo.
type Executor struct {
	opts    Options
	program *tea.Program
}

// NewExecutor creates a TUI executor.
func NewExecutor(opts Options) *Executor {
	return &Executor{opts: opts}
}

// Run starts the TUI and blocks until the user exits, the demo quits
// through the fallback or minimize handler, or ctx is cancelled.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.opts)
	defer m.teardown()

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := e.program.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	if fm, ok := final.(*model); ok && fm.quitReason != "" {
		fmt.Printf("backnav exited: %s\n", fm.quitReason)
	}
	return nil
}
