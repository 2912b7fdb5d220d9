// Package route names the screens of the app and keeps the navigation history.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Home       = "/"
	todoPrefix = "/todos/"
)

// TodoPath is the detail route for the item with the given id.
func TodoPath(id int) string {
	return todoPrefix + strconv.Itoa(id)
}

// ParseTodoPath extracts the id parameter from a detail route.
func ParseTodoPath(path string) (int, error) {
	raw, ok := strings.CutPrefix(path, todoPrefix)
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("not a todo route: %q", path)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad todo id %q: %w", raw, err)
	}
	return id, nil
}

// Stack is the screen history. The zero value sits on Home.
type Stack struct {
	paths []string
}

// Push moves to path.
func (s *Stack) Push(path string) { s.paths = append(s.paths, path) }

// Pop goes back one screen; it never leaves Home.
func (s *Stack) Pop() string {
	if len(s.paths) > 0 {
		s.paths = s.paths[:len(s.paths)-1]
	}
	return s.Current()
}

// Current is the path on top of the history.
func (s *Stack) Current() string {
	if len(s.paths) == 0 {
		return Home
	}
	return s.paths[len(s.paths)-1]
}

// Depth counts screens above Home.
func (s *Stack) Depth() int { return len(s.paths) }
