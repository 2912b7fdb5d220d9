// Package app holds the process-wide application state: the todo list, the
// current theme and the bridge that persists both.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/persist"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/filestore"
	"github.com/idilsaglam/tada/internal/store/sqlstore"
	"github.com/idilsaglam/tada/internal/todo"
)

// App is created once at startup and closed at exit.
// It is not safe for concurrent mutation; the UI loop is its only caller.
type App struct {
	kv     store.Interface
	bridge *persist.Bridge
	logger *log.Logger

	list  *todo.List
	theme model.Theme
}

// Options configure New.
type Options struct {
	Logger *log.Logger
	// DefaultTheme is used when no theme is stored.
	DefaultTheme model.Theme
	// Seed overrides the bundled default list.
	Seed func() []model.Item
}

// New loads the list and theme from kv. It never fails: storage problems are
// logged and the app starts from the seed list and the default theme.
func New(ctx context.Context, kv store.Interface, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var bopts []persist.Option
	if opts.Seed != nil {
		bopts = append(bopts, persist.WithSeed(opts.Seed))
	}
	bridge := persist.New(kv, logger, bopts...)

	a := &App{
		kv:     kv,
		bridge: bridge,
		logger: logger,
		list:   todo.NewList(bridge.LoadList(ctx)),
		theme:  bridge.LoadTheme(ctx, opts.DefaultTheme),
	}
	logger.Debug("app started", "todos", a.list.Len(), "theme", a.theme)
	return a
}

// Close releases the store.
func (a *App) Close() error {
	if err := a.kv.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Items returns a copy of the list, newest first.
func (a *App) Items() []model.Item { return a.list.Items() }

// Get returns the item with the given id.
func (a *App) Get(id int) (model.Item, bool) { return a.list.Get(id) }

// Stats counts completed and pending items.
func (a *App) Stats() (done, pending int) { return a.list.Stats() }

// Theme is the current color scheme.
func (a *App) Theme() model.Theme { return a.theme }

// Logger is the app-wide logger.
func (a *App) Logger() *log.Logger { return a.logger }

// Change describes a list mutation that still has to be written out.
// Seq orders concurrent writes; the newest one always wins.
type Change struct {
	Seq   uint64
	Items []model.Item
}

// Save writes the change, logging and swallowing any storage error.
func (a *App) Save(ctx context.Context, c Change) {
	_ = a.bridge.SaveListSeq(ctx, c.Seq, c.Items)
}

// Add creates an item from title. ok is false for blank titles.
func (a *App) Add(title string) (item model.Item, change Change, ok bool) {
	item, ok = a.list.Add(title)
	if !ok {
		return model.Item{}, Change{}, false
	}
	return item, a.change(), true
}

// Toggle flips the completed flag of id.
func (a *App) Toggle(id int) (Change, bool) {
	if !a.list.Toggle(id) {
		return Change{}, false
	}
	return a.change(), true
}

// Remove deletes id.
func (a *App) Remove(id int) (Change, bool) {
	if !a.list.Remove(id) {
		return Change{}, false
	}
	return a.change(), true
}

// Rename sets a new title on id.
func (a *App) Rename(id int, title string) (Change, bool) {
	if !a.list.Rename(id, title) {
		return Change{}, false
	}
	return a.change(), true
}

// AddAndSave, ToggleAndSave, RemoveAndSave and RenameAndSave are the
// synchronous forms used by one-shot commands.

func (a *App) AddAndSave(ctx context.Context, title string) (model.Item, bool) {
	item, c, ok := a.Add(title)
	if ok {
		a.Save(ctx, c)
	}
	return item, ok
}

func (a *App) ToggleAndSave(ctx context.Context, id int) bool {
	c, ok := a.Toggle(id)
	if ok {
		a.Save(ctx, c)
	}
	return ok
}

func (a *App) RemoveAndSave(ctx context.Context, id int) bool {
	c, ok := a.Remove(id)
	if ok {
		a.Save(ctx, c)
	}
	return ok
}

func (a *App) RenameAndSave(ctx context.Context, id int, title string) bool {
	c, ok := a.Rename(id, title)
	if ok {
		a.Save(ctx, c)
	}
	return ok
}

// ToggleTheme flips the theme, writes it, then switches the in-memory value.
// A failed write is logged and the switch still happens.
func (a *App) ToggleTheme(ctx context.Context) model.Theme {
	return a.SetTheme(ctx, a.theme.Toggle())
}

// SetTheme stores th and makes it current.
func (a *App) SetTheme(ctx context.Context, th model.Theme) model.Theme {
	_ = a.bridge.SaveTheme(ctx, th)
	a.theme = th
	return a.theme
}

// Snapshot is a Change holding the current list, newer than any issued so far.
func (a *App) Snapshot() Change { return a.change() }

func (a *App) change() Change {
	return Change{Seq: a.bridge.NextSeq(), Items: a.list.Items()}
}

// OpenStore picks a backend from the store URL:
// "memory", a path ending in .json, a postgres:// URL or a SQLite path.
func OpenStore(url string) (store.Interface, error) {
	switch {
	case url == "":
		return nil, errors.New("empty store location")
	case url == "memory":
		return store.NewMemory(), nil
	case strings.HasSuffix(strings.ToLower(url), ".json"):
		s, err := filestore.New(url)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	default:
		if !strings.Contains(url, "://") && url != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(url), 0o700); err != nil {
				return nil, fmt.Errorf("mkdir: %w", err)
			}
		}
		s, err := sqlstore.New(url)
		if err != nil {
			return nil, fmt.Errorf("open sql store: %w", err)
		}
		return s, nil
	}
}
