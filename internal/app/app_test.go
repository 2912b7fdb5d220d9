package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/persist"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/filestore"
	"github.com/idilsaglam/tada/internal/store/sqlstore"
)

type failingSetStore struct {
	*store.Memory
}

func (failingSetStore) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func seedTwo() []model.Item {
	return []model.Item{{ID: 1, Title: "one"}, {ID: 2, Title: "two", Completed: true}}
}

func newTestApp(t *testing.T, kv store.Interface) (*App, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	a := New(context.Background(), kv, Options{
		Logger:       log.NewWithOptions(buf, log.Options{Level: log.DebugLevel}),
		DefaultTheme: model.ThemeLight,
		Seed:         seedTwo,
	})
	t.Cleanup(func() { _ = a.Close() })
	return a, buf
}

func stored(t *testing.T, kv store.Interface, key string) string {
	t.Helper()
	raw, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return string(raw)
}

func TestNew_SeedFallback(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	assert.Equal(t, []model.Item{{ID: 2, Title: "two", Completed: true}, {ID: 1, Title: "one"}}, a.Items())
	assert.Equal(t, model.ThemeLight, a.Theme())
}

func TestApp_MutationsPersist(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	a, _ := newTestApp(t, kv)

	item, ok := a.AddAndSave(ctx, "Buy milk")
	require.True(t, ok)
	assert.Equal(t, model.Item{ID: 3, Title: "Buy milk"}, item)
	assert.JSONEq(t, `[{"id":3,"title":"Buy milk","completed":false},{"id":2,"title":"two","completed":true},{"id":1,"title":"one","completed":false}]`,
		stored(t, kv, persist.TodosKey))

	require.True(t, a.ToggleAndSave(ctx, 3))
	assert.Contains(t, stored(t, kv, persist.TodosKey), `{"id":3,"title":"Buy milk","completed":true}`)

	require.True(t, a.RenameAndSave(ctx, 3, "Buy oat milk"))
	assert.Contains(t, stored(t, kv, persist.TodosKey), `"Buy oat milk"`)

	require.True(t, a.RemoveAndSave(ctx, 2))
	assert.JSONEq(t, `[{"id":3,"title":"Buy oat milk","completed":true},{"id":1,"title":"one","completed":false}]`,
		stored(t, kv, persist.TodosKey))

	t.Run("no-ops do not write", func(t *testing.T) {
		before := stored(t, kv, persist.TodosKey)
		_, ok := a.AddAndSave(ctx, "   ")
		assert.False(t, ok)
		assert.False(t, a.ToggleAndSave(ctx, 99))
		assert.False(t, a.RemoveAndSave(ctx, 2))
		assert.False(t, a.RenameAndSave(ctx, 1, ""))
		assert.Equal(t, before, stored(t, kv, persist.TodosKey))
	})

	t.Run("reload sees the same list", func(t *testing.T) {
		b := New(ctx, kv, Options{Logger: log.New(&bytes.Buffer{}), Seed: seedTwo})
		assert.Equal(t, a.Items(), b.Items())
	})
}

func TestApp_AsyncChangesOutOfOrder(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	a, _ := newTestApp(t, kv)

	_, first, ok := a.Add("first")
	require.True(t, ok)
	second, ok := a.Toggle(1)
	require.True(t, ok)

	a.Save(ctx, second)
	a.Save(ctx, first) // arrives late, must not clobber

	assert.Contains(t, stored(t, kv, persist.TodosKey), `{"id":1,"title":"one","completed":true}`)
	assert.Contains(t, stored(t, kv, persist.TodosKey), `"first"`)
}

func TestApp_ToggleTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("flips and persists", func(t *testing.T) {
		kv := store.NewMemory()
		a, _ := newTestApp(t, kv)
		assert.Equal(t, model.ThemeDark, a.ToggleTheme(ctx))
		assert.Equal(t, "dark", stored(t, kv, persist.ThemeKey))
		assert.Equal(t, model.ThemeLight, a.ToggleTheme(ctx))
		assert.Equal(t, "light", stored(t, kv, persist.ThemeKey))
	})

	t.Run("stored theme is adopted at startup", func(t *testing.T) {
		kv := store.NewMemory()
		require.NoError(t, kv.Set(ctx, persist.ThemeKey, []byte("dark")))
		a, _ := newTestApp(t, kv)
		assert.Equal(t, model.ThemeDark, a.Theme())
	})

	t.Run("write failure still flips in memory", func(t *testing.T) {
		a, logs := newTestApp(t, failingSetStore{store.NewMemory()})
		assert.Equal(t, model.ThemeDark, a.ToggleTheme(ctx))
		assert.Equal(t, model.ThemeDark, a.Theme())
		assert.Contains(t, logs.String(), "quota exceeded")
	})
}

func TestApp_SaveFailureKeepsMemoryState(t *testing.T) {
	a, logs := newTestApp(t, failingSetStore{store.NewMemory()})
	_, ok := a.AddAndSave(context.Background(), "still here")
	require.True(t, ok)
	assert.Len(t, a.Items(), 3)
	assert.Contains(t, logs.String(), "save todos")
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("memory", func(t *testing.T) {
		s, err := OpenStore("memory")
		require.NoError(t, err)
		assert.IsType(t, &store.Memory{}, s)
	})

	t.Run("json file", func(t *testing.T) {
		s, err := OpenStore(filepath.Join(dir, "todos.JSON"))
		require.NoError(t, err)
		assert.IsType(t, &filestore.Store{}, s)
	})

	t.Run("sqlite in a new directory", func(t *testing.T) {
		s, err := OpenStore(filepath.Join(dir, "sub", "tada.db"))
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &sqlstore.Store{}, s)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := OpenStore("")
		require.Error(t, err)
	})
}
