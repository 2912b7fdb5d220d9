// Package persist loads and saves the todo list and theme through a key-value store.
//
// Failures never propagate to the UI: they are wrapped in StorageError, logged,
// and the caller keeps whatever it has in memory.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/seed"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/todo"
)

// Storage keys shared with the on-device layout.
const (
	TodosKey = "TodoApp"
	ThemeKey = "colorScheme"
)

// StorageError is a failed read, write or parse of a persisted value.
type StorageError struct {
	Op  string // "read", "write" or "parse"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Bridge moves whole values between memory and the store.
type Bridge struct {
	kv     store.Interface
	logger *log.Logger
	seed   func() []model.Item

	mu      sync.Mutex
	issued  uint64 // last sequence handed out by NextSeq
	written uint64 // sequence of the newest list write that reached the store
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithSeed replaces the bundled default list.
func WithSeed(fn func() []model.Item) Option {
	return func(b *Bridge) { b.seed = fn }
}

// New makes a Bridge over kv. A nil logger falls back to the default charm logger.
func New(kv store.Interface, logger *log.Logger, opts ...Option) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	b := &Bridge{kv: kv, logger: logger, seed: seed.Items}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadList returns the stored list sorted by id descending, or the seed list
// when nothing usable is stored.
func (b *Bridge) LoadList(ctx context.Context) []model.Item {
	items, err := b.readList(ctx)
	if err != nil {
		b.logger.Error("load todos", "err", err)
	}
	if len(items) == 0 {
		items = b.seed()
		b.logger.Debug("using seed todos", "count", len(items))
	}
	todo.SortDesc(items)
	return items
}

func (b *Bridge) readList(ctx context.Context) ([]model.Item, error) {
	raw, err := b.kv.Get(ctx, TodosKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Key: TodosKey, Err: err}
	}
	items, err := seed.Decode(raw)
	if err != nil {
		return nil, &StorageError{Op: "parse", Key: TodosKey, Err: err}
	}
	return items, nil
}

// NextSeq reserves a sequence number for a list write. Take it when the
// mutation happens, before handing the write off to another goroutine.
func (b *Bridge) NextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// SaveList overwrites the stored list with items.
func (b *Bridge) SaveList(ctx context.Context, items []model.Item) error {
	return b.SaveListSeq(ctx, b.NextSeq(), items)
}

// SaveListSeq writes items unless a write with a higher sequence already landed.
// Writes are serialized, so the store always ends with the newest list.
func (b *Bridge) SaveListSeq(ctx context.Context, seq uint64, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		serr := &StorageError{Op: "write", Key: TodosKey, Err: fmt.Errorf("json marshal: %w", err)}
		b.logger.Error("save todos", "err", serr)
		return serr
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.written {
		b.logger.Debug("skip stale todos write", "seq", seq, "written", b.written)
		return nil
	}
	if err := b.kv.Set(ctx, TodosKey, raw); err != nil {
		serr := &StorageError{Op: "write", Key: TodosKey, Err: err}
		b.logger.Error("save todos", "err", serr)
		return serr
	}
	b.written = seq
	b.logger.Debug("saved todos", "count", len(items), "seq", seq)
	return nil
}
