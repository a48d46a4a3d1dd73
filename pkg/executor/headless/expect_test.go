package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckExpect(t *testing.T) {
	yes, no := true, false
	got := StepResult{
		Handled:  &yes,
		Fallback: false,
		Armed:    true,
		Calls:    []string{"sheet.back", "tabs.back"},
		Records:  []string{"failure:bottom_sheet", "success:tab_history"},
		Consumer: "tabs",
	}

	assert.Empty(t, checkExpect(Expect{
		Handled:   &yes,
		Fallback:  &no,
		Armed:     &yes,
		Calls:     []string{"sheet.back", "tabs.back"},
		Records:   []string{"failure:bottom_sheet", "success:tab_history"},
		HandledBy: "t?bs",
	}, got))

	failures := checkExpect(Expect{
		Handled:   &no,
		Fallback:  &yes,
		Armed:     &no,
		Calls:     []string{"tabs.back"},
		HandledBy: "sheet",
		Error:     "boom*",
	}, got)
	assert.Len(t, failures, 6)

	assert.Len(t, checkExpect(Expect{}, StepResult{Error: "boom"}), 1, "unexpected error")
	assert.Empty(t, checkExpect(Expect{Error: "bo*"}, StepResult{Error: "boom"}))
	assert.Len(t, checkExpect(Expect{Handled: &yes}, StepResult{}), 1, "no handled outcome")
}
