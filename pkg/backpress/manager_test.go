package backpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Register(t *testing.T) {
	t.Run("rejects duplicate type and keeps the first", func(t *testing.T) {
		tr := &trace{}
		m := NewManager()
		first := newFake(tr, "first", True)
		second := newFake(tr, "second", True)

		require.NoError(t, m.Register(first, TypeFindToolbar))
		err := m.Register(second, TypeFindToolbar)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)

		h, ok := m.Handler(TypeFindToolbar)
		require.True(t, ok)
		assert.Same(t, first, h)
		assert.Equal(t, 0, second.enabled.ObserverCount(), "rejected handler must not be observed")
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		m := NewManager()
		err := m.Register(newFake(&trace{}, "x", True), Type(99))
		assert.ErrorIs(t, err, ErrInvalidType)
		assert.False(t, m.IsRegistered(Type(99)))
	})

	t.Run("rejects nil handler", func(t *testing.T) {
		m := NewManager()
		assert.ErrorIs(t, m.Register(nil, TypeTabHistory), ErrNilHandler)
	})

	t.Run("subscribes to enabled state", func(t *testing.T) {
		m := NewManager()
		h := newFake(&trace{}, "h", False)
		require.NoError(t, m.Register(h, TypeTabHistory))
		assert.True(t, m.IsRegistered(TypeTabHistory))
		assert.Equal(t, 1, h.enabled.ObserverCount())
	})
}

func TestManager_Unregister(t *testing.T) {
	t.Run("unknown type is an error", func(t *testing.T) {
		m := NewManager()
		assert.ErrorIs(t, m.Unregister(TypeBottomSheet), ErrNotRegistered)
		assert.ErrorIs(t, m.Unregister(Type(-1)), ErrInvalidType)
	})

	t.Run("detaches subscription and frees slot", func(t *testing.T) {
		m := NewManager()
		h := newFake(&trace{}, "h", True)
		require.NoError(t, m.Register(h, TypeBottomSheet))
		require.True(t, m.IsArmed())

		require.NoError(t, m.Unregister(TypeBottomSheet))
		assert.False(t, m.IsRegistered(TypeBottomSheet))
		assert.Equal(t, 0, h.enabled.ObserverCount())
		assert.False(t, m.IsArmed())

		// The slot can be reused.
		require.NoError(t, m.Register(h, TypeBottomSheet))
	})
}

func TestManager_Armed(t *testing.T) {
	m := NewManager()
	var changes []Tristate
	m.ArmedState().AddObserver(func(v Tristate) { changes = append(changes, v) })

	a := newFake(&trace{}, "a", Unknown)
	b := newFake(&trace{}, "b", False)
	require.NoError(t, m.Register(a, TypeFullscreen))
	require.NoError(t, m.Register(b, TypeTabHistory))
	assert.False(t, m.IsArmed(), "unknown and false are not enabled")

	b.enabled.Set(True)
	assert.True(t, m.IsArmed())

	a.enabled.Set(True)
	b.enabled.Set(False)
	assert.True(t, m.IsArmed())

	a.enabled.Set(Unknown)
	assert.False(t, m.IsArmed(), "flipping the last enabled handler to unknown disarms")

	assert.Equal(t, []Tristate{True, False}, changes)
}

func TestManager_LastResortAlwaysArmed(t *testing.T) {
	tests := []struct {
		name      string
		policy    bool
		wantArmed bool
	}{
		{name: "policy off", policy: false, wantArmed: false},
		{name: "policy on", policy: true, wantArmed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(WithLastResortAlwaysArmed(tt.policy))
			require.NoError(t, m.Register(newFake(&trace{}, "min", False), TypeMinimizeAppAndCloseTab))
			assert.Equal(t, tt.wantArmed, m.IsArmed())
		})
	}

	t.Run("only the last resort type forces arming", func(t *testing.T) {
		m := NewManager(WithLastResortAlwaysArmed(true))
		require.NoError(t, m.Register(newFake(&trace{}, "tab", False), TypeTabHistory))
		assert.False(t, m.IsArmed())
	})
}

func TestManager_Destroy(t *testing.T) {
	tr := &trace{}
	m := NewManager()
	h := newFake(tr, "sheet", True)
	require.NoError(t, m.Register(h, TypeBottomSheet))
	fired := 0
	m.AddSystemNavigationObserver(func() { fired++ })

	m.OnBackStarted(GestureEvent{Edge: EdgeLeft})
	tr.take()

	m.Destroy()
	assert.Empty(t, tr.take(), "teardown is not a gesture cancel")
	assert.Equal(t, 0, h.enabled.ObserverCount())
	assert.False(t, m.IsRegistered(TypeBottomSheet))
	assert.False(t, m.IsArmed())
	_, pinned := m.ActiveType()
	assert.False(t, pinned)

	m.NotifySystemNavigation()
	assert.Equal(t, 0, fired)

	assert.ErrorIs(t, m.Register(h, TypeBottomSheet), ErrDestroyed)
	assert.ErrorIs(t, m.Unregister(TypeBottomSheet), ErrDestroyed)
	assert.False(t, m.HandleBackPress())

	assert.NotPanics(t, m.Destroy)
	assert.True(t, m.Destroyed())
}

func TestManager_SystemNavigationObservers(t *testing.T) {
	m := NewManager()
	var calls []string

	var selfRemoving *Subscription
	m.AddSystemNavigationObserver(func() { calls = append(calls, "a") })
	selfRemoving = m.AddSystemNavigationObserver(func() {
		calls = append(calls, "b")
		selfRemoving.Remove()
	})
	c := m.AddSystemNavigationObserver(func() { calls = append(calls, "c") })

	m.NotifySystemNavigation()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, calls)

	calls = nil
	c.Remove()
	c.Remove()
	m.NotifySystemNavigation()
	assert.Equal(t, []string{"a"}, calls)
	assert.False(t, selfRemoving.Active())
}
