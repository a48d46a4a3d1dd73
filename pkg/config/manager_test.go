package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	data        map[string]interface{}
	validateErr error
	resets      int
}

func (m *mockSection) ID() string                                { return m.id }
func (m *mockSection) Title() string                             { return m.id }
func (m *mockSection) Description() string                       { return "" }
func (m *mockSection) Data() map[string]interface{}              { return m.data }
func (m *mockSection) SetData(data map[string]interface{}) error { m.data = data; return nil }
func (m *mockSection) Validate() error                           { return m.validateErr }
func (m *mockSection) Reset()                                    { m.resets++; m.data = nil }

// mockStore is a test implementation of the Store interface
type mockStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saves    int
}

func newMockStore() *mockStore {
	return &mockStore{sections: make(map[string]map[string]interface{})}
}

func (m *mockStore) Load() error { return m.loadErr }

func (m *mockStore) Save() error {
	m.saves++
	return m.saveErr
}

func (m *mockStore) GetSection(sectionID string) (map[string]interface{}, error) {
	return m.sections[sectionID], nil
}

func (m *mockStore) SetSection(sectionID string, data map[string]interface{}) error {
	m.sections[sectionID] = data
	return nil
}

func (m *mockStore) GetAll() (map[string]map[string]interface{}, error) {
	return m.sections, nil
}

func (m *mockStore) SetAll(data map[string]map[string]interface{}) error {
	m.sections = data
	return nil
}

func TestManager_RegisterSection(t *testing.T) {
	store := newMockStore()
	manager := NewManager(store)
	assert.Same(t, store, manager.Store())
	assert.Empty(t, manager.GetSections())

	require.NoError(t, manager.RegisterSection(&mockSection{id: "b"}))
	require.NoError(t, manager.RegisterSection(&mockSection{id: "a"}))
	assert.Error(t, manager.RegisterSection(&mockSection{id: "a"}))

	sections := manager.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, "b", sections[0].ID())
	assert.Equal(t, "a", sections[1].ID())

	_, ok := manager.GetSection("a")
	assert.True(t, ok)
	_, ok = manager.GetSection("missing")
	assert.False(t, ok)
}

func TestManager_LoadAll(t *testing.T) {
	store := newMockStore()
	store.sections["a"] = map[string]interface{}{"k": "v"}
	manager := NewManager(store)
	a := &mockSection{id: "a"}
	b := &mockSection{id: "b", data: map[string]interface{}{"default": true}}
	require.NoError(t, manager.RegisterSection(a))
	require.NoError(t, manager.RegisterSection(b))

	require.NoError(t, manager.LoadAll())
	assert.Equal(t, "v", a.data["k"])
	assert.Equal(t, true, b.data["default"], "sections without stored data keep defaults")
}

func TestManager_LoadAllErrors(t *testing.T) {
	store := newMockStore()
	store.loadErr = errors.New("disk gone")
	manager := NewManager(store)
	assert.ErrorIs(t, manager.LoadAll(), store.loadErr)

	store.loadErr = nil
	store.sections["a"] = map[string]interface{}{"k": "v"}
	bad := errors.New("bad")
	require.NoError(t, manager.RegisterSection(&mockSection{id: "a", validateErr: bad}))
	assert.ErrorIs(t, manager.LoadAll(), bad)
}

func TestManager_SaveAll(t *testing.T) {
	store := newMockStore()
	manager := NewManager(store)
	require.NoError(t, manager.RegisterSection(&mockSection{id: "a", data: map[string]interface{}{"x": 1}}))

	require.NoError(t, manager.SaveAll())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 1, store.sections["a"]["x"])
}

func TestManager_SaveAllValidates(t *testing.T) {
	store := newMockStore()
	manager := NewManager(store)
	bad := errors.New("bad")
	require.NoError(t, manager.RegisterSection(&mockSection{id: "a", validateErr: bad}))

	assert.ErrorIs(t, manager.SaveAll(), bad)
	assert.Zero(t, store.saves, "nothing is written when a section is invalid")
}

func TestManager_ResetAll(t *testing.T) {
	manager := NewManager(newMockStore())
	a := &mockSection{id: "a"}
	b := &mockSection{id: "b"}
	require.NoError(t, manager.RegisterSection(a))
	require.NoError(t, manager.RegisterSection(b))

	manager.ResetAll()
	assert.Equal(t, 1, a.resets)
	assert.Equal(t, 1, b.resets)
}
