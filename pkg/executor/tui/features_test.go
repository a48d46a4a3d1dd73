package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/backnav/pkg/backpress"
)

func TestBrowser_Features(t *testing.T) {
	var log []string
	b := newBrowser(func(format string, v ...interface{}) { log = append(log, format) })

	features := b.features()
	for i := 1; i < len(features); i++ {
		assert.Less(t, int(features[i-1].typ), int(features[i].typ), "features are listed in priority order")
	}

	assert.False(t, b.tabs.open())
	assert.Equal(t, "page 2", b.navigate())
	assert.True(t, b.tabs.open())
	assert.Equal(t, backpress.ResultSuccess, b.tabs.HandleBackPress())
	assert.False(t, b.tabs.open())
	assert.Equal(t, backpress.ResultIgnored, b.tabs.HandleBackPress())

	assert.Equal(t, backpress.Unknown, b.minimize.enabled.Get())
	assert.Equal(t, backpress.True, b.toggleMinimize())
	assert.Equal(t, backpress.Unknown, b.toggleMinimize())

	assert.NotEmpty(t, log)
}

func TestFeature_EscapeRouting(t *testing.T) {
	b := newBrowser(func(string, ...interface{}) {})

	assert.True(t, b.bubble.InvokeBackActionOnEscape())
	assert.True(t, b.fullscreen.InvokeBackActionOnEscape())
	assert.False(t, b.sheet.InvokeBackActionOnEscape())
	assert.False(t, b.find.InvokeBackActionOnEscape())

	b.sheet.setOpen(true)
	b.sheetLock = true
	assert.Equal(t, backpress.False, b.sheet.HandleEscPress())
	assert.Equal(t, backpress.ResultFailure, b.sheet.HandleBackPress())
	assert.True(t, b.sheet.open())

	b.sheetLock = false
	assert.Equal(t, backpress.True, b.sheet.HandleEscPress())
	assert.False(t, b.sheet.open())
}

func TestFeature_GesturePreview(t *testing.T) {
	b := newBrowser(func(string, ...interface{}) {})
	f := b.fullscreen
	f.setOpen(true)

	f.OnBackStarted(backpress.GestureEvent{Edge: backpress.EdgeRight, Progress: 0.1})
	assert.True(t, f.previewing)
	assert.Equal(t, backpress.EdgeRight, f.edge)

	f.OnBackProgressed(backpress.GestureEvent{Progress: 0.75})
	assert.InDelta(t, 0.75, f.preview, 1e-9)

	f.OnBackCancelled()
	assert.False(t, f.previewing)
	assert.Zero(t, f.preview)
}
