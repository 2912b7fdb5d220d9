package ui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/persist"
	"github.com/idilsaglam/tada/internal/route"
	"github.com/idilsaglam/tada/internal/store"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyCtrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T) (tuiModel, *app.App, *store.Memory) {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemory()
	a := app.New(ctx, kv, app.Options{
		Logger:       log.New(io.Discard),
		DefaultTheme: model.ThemeLight,
		Seed: func() []model.Item {
			return []model.Item{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}}
		},
	})
	m := newTUIModel(ctx, a)
	m.persist = func(c app.Change) tea.Cmd {
		a.Save(ctx, c)
		return nil
	}
	return m, a, kv
}

func press(t *testing.T, m tuiModel, msgs ...tea.Msg) tuiModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tuiModel)
		require.True(t, ok)
	}
	return m
}

func storedTodos(t *testing.T, kv store.Interface) string {
	t.Helper()
	raw, err := kv.Get(context.Background(), persist.TodosKey)
	require.NoError(t, err)
	return string(raw)
}

func TestTUI_AddFromInput(t *testing.T) {
	m, a, kv := newTestModel(t)

	m = press(t, m, runes("Buy milk"), keyEnter)
	items := a.Items()
	require.Len(t, items, 3)
	assert.Equal(t, model.Item{ID: 3, Title: "Buy milk"}, items[0])
	assert.Empty(t, m.input.Value(), "input is cleared after add")
	assert.Contains(t, storedTodos(t, kv), `"Buy milk"`)
	assert.Len(t, m.list.Items(), 3)
	assert.True(t, m.changed)
}

func TestTUI_BlankInputIsIgnored(t *testing.T) {
	m, a, kv := newTestModel(t)

	m = press(t, m, runes("   "), keyEnter)
	assert.Len(t, a.Items(), 2)
	assert.Equal(t, "   ", m.input.Value())
	_, err := kv.Get(context.Background(), persist.TodosKey)
	require.ErrorIs(t, err, store.ErrNotFound, "nothing written for a no-op")
}

func TestTUI_ToggleAndDeleteInList(t *testing.T) {
	m, a, kv := newTestModel(t)
	m = press(t, m, keyTab)
	require.Equal(t, focusList, m.focus)

	m = press(t, m, keySpace)
	it, ok := a.Get(2)
	require.True(t, ok)
	assert.True(t, it.Completed, "first row is the highest id")
	assert.Contains(t, storedTodos(t, kv), `{"id":2,"title":"two","completed":true}`)

	m = press(t, m, keySpace)
	it, _ = a.Get(2)
	assert.False(t, it.Completed)

	m = press(t, m, runes("d"))
	_, ok = a.Get(2)
	assert.False(t, ok)
	assert.Len(t, m.list.Items(), 1)
	assert.JSONEq(t, `[{"id":1,"title":"one","completed":false}]`, storedTodos(t, kv))
}

func TestTUI_DetailNavigation(t *testing.T) {
	m, a, kv := newTestModel(t)
	m = press(t, m, keyTab, keyEnter)
	assert.Equal(t, route.TodoPath(2), m.nav.Current())
	assert.Contains(t, m.View(), "Todo #2")

	t.Run("edit title", func(t *testing.T) {
		m := press(t, m, runes("e"))
		require.True(t, m.editing)
		assert.Equal(t, "two", m.edit.Value())
		m.edit.SetValue("two, renamed")
		m = press(t, m, keyEnter)
		assert.False(t, m.editing)
		it, _ := a.Get(2)
		assert.Equal(t, "two, renamed", it.Title)
		assert.Contains(t, storedTodos(t, kv), "two, renamed")
	})

	t.Run("back returns home", func(t *testing.T) {
		m := press(t, m, keyEsc)
		assert.Equal(t, route.Home, m.nav.Current())
	})

	t.Run("delete from detail pops", func(t *testing.T) {
		m := press(t, m, runes("d"))
		assert.Equal(t, route.Home, m.nav.Current())
		_, ok := a.Get(2)
		assert.False(t, ok)
	})
}

func TestTUI_DetailOfMissingItem(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.nav.Push(route.TodoPath(99))
	assert.Contains(t, m.View(), "todo not found")
	m = press(t, m, keyEsc)
	assert.Equal(t, route.Home, m.nav.Current())
}

func TestTUI_ToggleTheme(t *testing.T) {
	m, a, kv := newTestModel(t)
	require.Equal(t, model.ThemeLight, m.styles.Theme)

	m = press(t, m, keyCtrlT)
	assert.Equal(t, model.ThemeDark, m.styles.Theme)
	assert.Equal(t, model.ThemeDark, a.Theme())
	raw, err := kv.Get(context.Background(), persist.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))

	// "t" only switches theme when the list has focus; in the input it is text
	m = press(t, m, runes("t"))
	assert.Equal(t, model.ThemeDark, m.styles.Theme)
	assert.Equal(t, "t", m.input.Value())

	m = press(t, m, keyTab, runes("t"))
	assert.Equal(t, model.ThemeLight, m.styles.Theme)
}

func TestTUI_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)

	// q in the input is just a letter
	next, _ := m.Update(runes("q"))
	m = next.(tuiModel)
	assert.Equal(t, "q", m.input.Value())

	m = press(t, m, keyTab)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUI_View(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "Add")
}

func TestTUI_BackspaceEditsInput(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, runes("ab"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "a", m.input.Value())
	assert.Equal(t, focusInput, m.focus)

	m = press(t, m, keyEsc)
	assert.Equal(t, focusList, m.focus)
}
