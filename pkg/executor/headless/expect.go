package headless

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// checkExpect compares a step result against its expectations and returns
// one message per mismatch.
func checkExpect(want Expect, got StepResult) []string {
	var failures []string
	fail := func(format string, v ...interface{}) {
		failures = append(failures, fmt.Sprintf(format, v...))
	}

	if want.Handled != nil && (got.Handled == nil || *got.Handled != *want.Handled) {
		fail("handled: want %t, got %s", *want.Handled, formatHandled(got.Handled))
	}
	if want.Fallback != nil && got.Fallback != *want.Fallback {
		fail("fallback: want %t, got %t", *want.Fallback, got.Fallback)
	}
	if want.Armed != nil && got.Armed != *want.Armed {
		fail("armed: want %t, got %t", *want.Armed, got.Armed)
	}
	if want.Calls != nil {
		if diff := cmp.Diff(want.Calls, got.Calls, cmpopts.EquateEmpty()); diff != "" {
			fail("calls mismatch (-want +got):\n%s", diff)
		}
	}
	if want.Records != nil {
		if diff := cmp.Diff(want.Records, got.Records, cmpopts.EquateEmpty()); diff != "" {
			fail("records mismatch (-want +got):\n%s", diff)
		}
	}
	if want.HandledBy != "" && !match(want.HandledBy, got.Consumer) {
		fail("handled_by: want %q, got %q", want.HandledBy, got.Consumer)
	}

	switch {
	case want.Error == "" && got.Error != "":
		fail("unexpected error: %s", got.Error)
	case want.Error != "" && !match(want.Error, got.Error):
		fail("error: want %q, got %q", want.Error, got.Error)
	}

	return failures
}

// match reports whether s matches pattern. Patterns are validated when the
// script is loaded.
func match(pattern, s string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(s)
}

func formatHandled(h *bool) string {
	if h == nil {
		return "none"
	}
	return fmt.Sprintf("%t", *h)
}
