package tui

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hookrt/internal/engine"
)

func newModel(t *testing.T, app string) *Model {
	t.Helper()
	m, err := New(app,
		engine.WithIdentityGenerator(engine.NewSequentialGenerator("i")),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func text(t *testing.T, m *Model, sel string) string {
	t.Helper()
	n := m.Document().Find(sel)
	require.NotNil(t, n, sel)
	return m.Document().Text(n)
}

func TestNew_UnknownApp(t *testing.T) {
	_, err := New("nope")
	require.Error(t, err)
}

func TestClickControls(t *testing.T) {
	m := newModel(t, "reducer")
	require.Len(t, m.controls, 2)

	m.Update(key(tea.KeyEnter))
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, "12", text(t, m, "h1"))

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown)) // stays on the last control
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, "11", text(t, m, "h1"))
	assert.Equal(t, 3, m.events)

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.selected)
}

func TestInputControl(t *testing.T) {
	m := newModel(t, "refcount")
	require.Len(t, m.controls, 1)

	m.Update(key(tea.KeyEnter))
	require.Equal(t, stateInput, m.state)
	m.Update(runes("abc"))
	m.Update(key(tea.KeyEnter))

	assert.Equal(t, stateSelect, m.state)
	assert.Equal(t, "2", text(t, m, "h1"))
	assert.Contains(t, m.View(), `input[value="abc"]`)
}

func TestInputEscape(t *testing.T) {
	m := newModel(t, "refcount")
	m.Update(key(tea.KeyEnter))
	m.Update(runes("zzz"))
	m.Update(key(tea.KeyEsc))

	assert.Equal(t, stateSelect, m.state)
	assert.Equal(t, "1", text(t, m, "h1"))
	assert.Equal(t, 0, m.events)
}

func TestSubmitControl(t *testing.T) {
	m := newModel(t, "notes")
	// form, title input, content textarea
	require.Len(t, m.controls, 3)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))
	m.Update(runes("Title"))
	m.Update(key(tea.KeyEnter))

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))
	m.Update(runes("Body"))
	m.Update(key(tea.KeyEnter))

	m.Update(key(tea.KeyUp))
	m.Update(key(tea.KeyUp))
	m.Update(key(tea.KeyEnter))

	assert.Equal(t, "Title", text(t, m, "li.note h3"))
}

func TestTickDrainsQueuedWork(t *testing.T) {
	m := newModel(t, "reducer")
	m.root.Defer(func() {})
	require.Equal(t, 1, m.root.Pending())

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, m.root.Pending())
}

func TestQuit(t *testing.T) {
	m := newModel(t, "reducer")
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestOutlineAndView(t *testing.T) {
	m := newModel(t, "reducer")
	out := Outline(m.Document())
	assert.Contains(t, out, "div\n")
	assert.Contains(t, out, "  h1")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "button#inc")

	view := m.View()
	assert.Contains(t, view, "reducer")
	assert.Contains(t, view, `button#inc "increment" [click]`)
	assert.Contains(t, view, "enter activate")
}
