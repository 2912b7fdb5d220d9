package persist

import (
	"context"
	"errors"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// LoadTheme returns the stored theme, or fallback when none is stored or it can't be read.
func (b *Bridge) LoadTheme(ctx context.Context, fallback model.Theme) model.Theme {
	raw, err := b.kv.Get(ctx, ThemeKey)
	if errors.Is(err, store.ErrNotFound) {
		return fallback
	}
	if err != nil {
		b.logger.Error("load theme", "err", &StorageError{Op: "read", Key: ThemeKey, Err: err})
		return fallback
	}
	th, err := model.ParseTheme(string(raw))
	if err != nil {
		b.logger.Error("load theme", "err", &StorageError{Op: "parse", Key: ThemeKey, Err: err})
		return fallback
	}
	return th
}

// SaveTheme overwrites the stored theme.
func (b *Bridge) SaveTheme(ctx context.Context, th model.Theme) error {
	if err := b.kv.Set(ctx, ThemeKey, []byte(th.String())); err != nil {
		serr := &StorageError{Op: "write", Key: ThemeKey, Err: err}
		b.logger.Error("save theme", "err", serr)
		return serr
	}
	return nil
}
