// Package todo holds the in-memory ordered list of items and its mutations.
package todo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// List owns the ordered item sequence, newest first.
// All operations are total: unknown ids and blank titles are no-ops.
// The bool results report whether the sequence changed.
type List struct {
	items []model.Item
}

// NewList copies items into a new List, keeping their order.
func NewList(items []model.Item) *List {
	return &List{items: slices.Clone(items)}
}

// Items returns a copy of the current sequence.
func (l *List) Items() []model.Item {
	return slices.Clone(l.items)
}

func (l *List) Len() int { return len(l.items) }

// Get returns the item with the given id.
func (l *List) Get(id int) (model.Item, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return l.items[i], true
}

// Add prepends a new pending item with id max+1 (1 for an empty list).
func (l *List) Add(title string) (model.Item, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: NextID(l.items), Title: title}
	l.items = slices.Insert(l.items, 0, it)
	return it, true
}

// Toggle flips the completed flag of the item with the given id.
func (l *List) Toggle(id int) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items[i].Completed = !l.items[i].Completed
	return true
}

// Remove deletes the item with the given id.
func (l *List) Remove(id int) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Rename replaces the title of the item with the given id.
func (l *List) Rename(id int, title string) bool {
	title = strings.TrimSpace(title)
	i := l.index(id)
	if i < 0 || title == "" || l.items[i].Title == title {
		return false
	}
	l.items[i].Title = title
	return true
}

// Stats counts completed and pending items.
func (l *List) Stats() (done, pending int) {
	return Stats(l.items)
}

func (l *List) index(id int) int {
	return slices.IndexFunc(l.items, func(it model.Item) bool { return it.ID == id })
}

// NextID returns max(ids)+1, or 1 when items is empty.
func NextID(items []model.Item) int {
	highest := 0
	for _, it := range items {
		highest = max(highest, it.ID)
	}
	return highest + 1
}

// SortDesc orders items by id, highest first. Equal ids keep their relative order.
func SortDesc(items []model.Item) {
	slices.SortStableFunc(items, func(a, b model.Item) int { return cmp.Compare(b.ID, a.ID) })
}

// Stats counts completed and pending items.
func Stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
