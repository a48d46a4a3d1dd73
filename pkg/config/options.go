package config

import (
	"github.com/entrhq/backnav/pkg/backpress"
)

// BuildManagerOptions converts the arbiter section into manager options.
// A nil section falls back to the global arbiter section, then to the
// section defaults. The gesture navigation query reads the section on
// every call so later changes take effect without rebuilding the manager.
func BuildManagerOptions(section *ArbiterSection) []backpress.Option {
	if section == nil {
		section = GetArbiter()
	}
	if section == nil {
		section = NewArbiterSection()
	}

	return []backpress.Option{
		backpress.WithLastResortAlwaysArmed(section.LastResortAlwaysArmed()),
		backpress.WithDebugAssertions(section.DebugAssertions()),
		backpress.WithGestureNavigation(section.GestureNavigation),
	}
}
