package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/route"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) FilterValue() string { return i.Title }

// itemDelegate renders one item per line: cursor, checkbox, title.
type itemDelegate struct {
	styles  Styles
	focused bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	title := ansi.Truncate(it.Title, max(m.Width()-6, 10), "…")

	box := d.styles.Muted.Render(d.styles.BoxUnchecked)
	text := d.styles.Input.Render(title)
	if it.Completed {
		box = d.styles.Success.Render(d.styles.BoxChecked)
		text = d.styles.Done.Render(title)
	}
	prefix := "  "
	if d.focused && index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

type focus int

const (
	focusInput focus = iota
	focusList
)

type tuiModel struct {
	ctx    context.Context
	app    *app.App
	styles Styles
	keys   keyMap
	help   help.Model

	nav   route.Stack
	focus focus
	input textinput.Model
	list  list.Model

	// inline title edit on the detail screen
	editing bool
	edit    textinput.Model

	width, height int
	changed       bool

	// persist turns a list change into the command that writes it
	persist func(app.Change) tea.Cmd
}

// Run starts the Bubble Tea program and blocks until the user quits.
// The final list is written once more on exit so no in-flight write is lost.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(newTUIModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := finalModel.(tuiModel); ok && fm.changed {
		a.Save(context.WithoutCancel(ctx), a.Snapshot())
	}
	return nil
}

func newTUIModel(ctx context.Context, a *app.App) tuiModel {
	m := tuiModel{
		ctx:    ctx,
		app:    a,
		styles: NewStyles(a.Theme()),
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.persist = func(c app.Change) tea.Cmd {
		return func() tea.Msg {
			a.Save(ctx, c)
			return nil
		}
	}

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "Add a new todo"
	m.input.CharLimit = 200
	m.input.Focus()

	m.edit = textinput.New()
	m.edit.Prompt = "> "
	m.edit.CharLimit = 200

	m.list = list.New(toListItems(a.Items()), itemDelegate{styles: m.styles}, 0, 0)
	m.list.SetShowTitle(false)
	m.list.SetShowHelp(false)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(false)
	m.list.SetShowPagination(true)
	m.list.DisableQuitKeybindings()
	m.list.Styles.PaginationStyle = m.styles.Help

	m.applyTheme(a.Theme())
	m.resize()
	return m
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{it})
	}
	return out
}

func (m tuiModel) Init() tea.Cmd { return textinput.Blink }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Kill) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Theme) {
			m.toggleTheme()
			return m, nil
		}
		if m.nav.Current() != route.Home {
			return m.updateDetail(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	// cursor blink and other ticks
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		item, change, ok := m.app.Add(m.input.Value())
		if !ok {
			return m, nil
		}
		m.input.SetValue("")
		cmd := m.refresh()
		m.list.Select(0)
		m.app.Logger().Debug("added todo", "id", item.ID)
		return m, tea.Batch(cmd, m.persist(change))
	case key.Matches(msg, m.keys.Focus), msg.Type == tea.KeyEsc:
		m.setFocus(focusList)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.NewTodo):
		m.setFocus(focusInput)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ThemeAlt):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if id, ok := m.selectedID(); ok {
			m.nav.Push(route.TodoPath(id))
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			if change, ok := m.app.Toggle(id); ok {
				return m, tea.Batch(m.refresh(), m.persist(change))
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			if change, ok := m.app.Remove(id); ok {
				return m, tea.Batch(m.refresh(), m.persist(change))
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m tuiModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, err := route.ParseTodoPath(m.nav.Current())
	if err != nil {
		m.nav.Pop()
		return m, nil
	}

	if m.editing {
		switch msg.String() {
		case "enter":
			m.editing = false
			m.edit.Blur()
			if change, ok := m.app.Rename(id, m.edit.Value()); ok {
				return m, tea.Batch(m.refresh(), m.persist(change))
			}
			return m, nil
		case "esc":
			m.editing = false
			m.edit.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.nav.Pop()
		return m, nil
	case key.Matches(msg, m.keys.ThemeAlt):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if change, ok := m.app.Toggle(id); ok {
			return m, tea.Batch(m.refresh(), m.persist(change))
		}
	case key.Matches(msg, m.keys.Delete):
		m.nav.Pop()
		if change, ok := m.app.Remove(id); ok {
			return m, tea.Batch(m.refresh(), m.persist(change))
		}
	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.app.Get(id); ok {
			m.editing = true
			m.edit.SetValue(it.Title)
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		}
	}
	return m, nil
}

// refresh copies the app list into the list widget after a mutation.
func (m *tuiModel) refresh() tea.Cmd {
	m.changed = true
	idx := m.list.Index()
	cmd := m.list.SetItems(toListItems(m.app.Items()))
	if n := len(m.list.Items()); n > 0 {
		m.list.Select(min(idx, n-1))
	}
	return cmd
}

func (m *tuiModel) toggleTheme() {
	m.applyTheme(m.app.ToggleTheme(m.ctx))
}

func (m *tuiModel) applyTheme(th model.Theme) {
	m.styles = NewStyles(th)
	m.input.TextStyle = m.styles.Input
	m.input.PlaceholderStyle = m.styles.Muted
	m.input.PromptStyle = m.styles.Accent
	m.edit.TextStyle = m.styles.Input
	m.edit.PromptStyle = m.styles.Accent
	m.help.Styles.ShortKey = m.styles.Muted.Bold(true)
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.ShortSeparator = m.styles.Help
	m.list.Styles.PaginationStyle = m.styles.Help
	m.list.SetDelegate(itemDelegate{styles: m.styles, focused: m.focus == focusList})
}

func (m *tuiModel) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.list.SetDelegate(itemDelegate{styles: m.styles, focused: f == focusList})
}

func (m *tuiModel) resize() {
	// header, progress, input row, blank, help, frame borders
	m.list.SetSize(max(m.width-4, 20), max(m.height-9, 3))
	m.input.Width = max(m.width-20, 10)
	m.edit.Width = max(m.width-10, 10)
}

func (m tuiModel) selectedID() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	return it.ID, true
}

func (m tuiModel) View() string {
	var content string
	if m.nav.Current() == route.Home {
		content = m.homeView()
	} else {
		content = m.detailView()
	}
	return m.styles.Border.Width(max(m.width-2, 20)).Render(content)
}

func (m tuiModel) homeView() string {
	s := m.styles
	items := m.app.Items()
	done, pending := m.app.Stats()

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		s.Title.Render("Todos"),
		s.Success.Render("✔"), done,
		s.Pending.Render("•"), pending,
		s.Accent.Render("Total"), len(items),
	)
	progress := s.Muted.Render(ProgressBar(done, len(items), 28))
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center,
		m.input.View(), " ", s.Button.Render("Add"), " ", s.Accent.Render(s.ThemeIcon))

	body := m.list.View()
	if len(items) == 0 {
		body = s.Muted.Render("no items")
	}

	var bindings []key.Binding
	if m.focus == focusInput {
		bindings = []key.Binding{m.keys.Submit, m.keys.Focus, m.keys.Theme}
	} else {
		bindings = []key.Binding{m.keys.Open, m.keys.Toggle, m.keys.Delete, m.keys.NewTodo, m.keys.ThemeAlt, m.keys.Quit}
	}
	return strings.Join([]string{header, progress, inputRow, "", body, m.help.ShortHelpView(bindings)}, "\n")
}

func (m tuiModel) detailView() string {
	s := m.styles
	id, err := route.ParseTodoPath(m.nav.Current())
	it, ok := m.app.Get(id)
	if err != nil || !ok {
		return strings.Join([]string{
			s.Error.Render("todo not found"),
			"",
			m.help.ShortHelpView([]key.Binding{m.keys.Back}),
		}, "\n")
	}

	status := s.Pending.Render("• pending")
	title := s.Title.Render(it.Title)
	if it.Completed {
		status = s.Success.Render("✔ done")
		title = s.Done.Render(it.Title)
	}
	if m.editing {
		title = m.edit.View()
	}

	lines := []string{
		s.Muted.Render(m.nav.Current()),
		s.Accent.Render(fmt.Sprintf("Todo #%d", it.ID)),
		"",
		title,
		"",
		status,
		"",
	}
	if m.editing {
		lines = append(lines, s.Help.Render("enter save • esc cancel"))
	} else {
		lines = append(lines, m.help.ShortHelpView([]key.Binding{m.keys.Toggle, m.keys.Edit, m.keys.Delete, m.keys.Back}))
	}
	return strings.Join(lines, "\n")
}
