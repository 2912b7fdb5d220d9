package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/route"
	"github.com/idilsaglam/tada/internal/todo"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool      // list grouped by pending/done
	Out   io.Writer // listing output, stdout when nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it opens the interactive screen.
func Run(ctx context.Context, a *app.App, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if len(args) == 0 {
		return doTUI(ctx, a)
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "tui":
		return doTUI(ctx, a)

	case "ls":
		return doList(a, opt)

	case "add":
		if len(rest) == 0 {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
		return doAdd(ctx, a, strings.Join(rest, " "))

	case "done":
		id, code := parseID("done", rest, 1)
		if code != 0 {
			return code
		}
		return doToggle(ctx, a, id)

	case "rm":
		id, code := parseID("rm", rest, 1)
		if code != 0 {
			return code
		}
		return doRemove(ctx, a, id)

	case "show":
		id, code := parseID("show", rest, 1)
		if code != 0 {
			return code
		}
		return doShow(a, id, opt)

	case "edit":
		if len(rest) < 2 {
			ui.Fail("usage: todo edit <id> <title...>")
			return 2
		}
		id, code := parseID("edit", rest[:1], 1)
		if code != 0 {
			return code
		}
		return doEdit(ctx, a, id, strings.Join(rest[1:], " "))

	case "theme":
		return doTheme(ctx, a, rest, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todo - a tiny todo list

Usage:
  todo [options] [subcommand] [args]

Subcommands:
  (none) | tui                 Open the interactive list
  add <title...>               Add a new item (title can be multiple words)
  ls                           List items, newest first
  done <id>                    Toggle done for the item with this id
  rm <id>                      Remove the item with this id
  show <id>                    Show one item
  edit <id> <title...>         Change the title of an item
  theme [toggle|light|dark]    Show or change the color scheme

Examples:
  todo add "Buy milk"
  todo ls
  todo done 3
  todo rm 3
`)
}

// -------------- subcommand impls ----------------

func parseID(cmd string, args []string, want int) (int, int) {
	if len(args) != want {
		ui.Fail(fmt.Sprintf("usage: todo %s <id>", cmd))
		return 0, 2
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + args[0])
		return 0, 2
	}
	return id, 0
}

func notFound(a *app.App, id int) int {
	ui.Fail(fmt.Sprintf("no item with id %d (have %d items)", id, len(a.Items())))
	fmt.Fprintln(os.Stderr, ui.Current().Muted.Render("Hint: run `todo ls` to see valid ids"))
	return 2
}

func doTUI(ctx context.Context, a *app.App) int {
	if err := ui.Run(ctx, a); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(a *app.App, opt Options) int {
	items := a.Items()
	s := ui.Current()

	d, p := todo.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		s.Title.Render("Todos"),
		s.Success.Render("✔"), d,
		s.Pending.Render("•"), p,
		s.Accent.Render("Total"), len(items),
		s.Muted.Render(s.ThemeIcon),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, s.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, s.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doAdd(ctx context.Context, a *app.App, title string) int {
	it, ok := a.AddAndSave(ctx, title)
	if !ok {
		ui.Fail("add: empty title")
		return 2
	}
	ui.OK(fmt.Sprintf("added #%d", it.ID))
	return 0
}

func doToggle(ctx context.Context, a *app.App, id int) int {
	if !a.ToggleAndSave(ctx, id) {
		return notFound(a, id)
	}
	ui.OK("toggled")
	return 0
}

func doRemove(ctx context.Context, a *app.App, id int) int {
	if !a.RemoveAndSave(ctx, id) {
		return notFound(a, id)
	}
	ui.OK("removed")
	return 0
}

func doEdit(ctx context.Context, a *app.App, id int, title string) int {
	if _, ok := a.Get(id); !ok {
		return notFound(a, id)
	}
	if strings.TrimSpace(title) == "" {
		ui.Fail("edit: empty title")
		return 2
	}
	if a.RenameAndSave(ctx, id, title) {
		ui.OK("renamed")
	} else {
		ui.OK("unchanged")
	}
	return 0
}

func doShow(a *app.App, id int, opt Options) int {
	it, ok := a.Get(id)
	if !ok {
		return notFound(a, id)
	}
	s := ui.Current()
	status := s.Pending.Render("• pending")
	if it.Completed {
		status = s.Success.Render("✔ done")
	}
	ui.Panel(opt.Out, []string{
		s.Muted.Render(route.TodoPath(it.ID)),
		s.Accent.Render(fmt.Sprintf("Todo #%d", it.ID)),
		s.Title.Render(it.Title),
		status,
	})
	return 0
}

func doTheme(ctx context.Context, a *app.App, args []string, opt Options) int {
	if len(args) > 1 {
		ui.Fail("usage: todo theme [toggle|light|dark]")
		return 2
	}
	if len(args) == 0 {
		fmt.Fprintln(opt.Out, a.Theme())
		return 0
	}
	var th model.Theme
	if args[0] == "toggle" {
		th = a.ToggleTheme(ctx)
	} else {
		parsed, err := model.ParseTheme(args[0])
		if err != nil {
			ui.Fail("theme: " + err.Error())
			return 2
		}
		th = a.SetTheme(ctx, parsed)
	}
	ui.SetTheme(th)
	ui.OK("theme: " + th.String())
	return 0
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item) []string {
	s := ui.Current()
	if len(items) == 0 {
		return []string{s.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%3d.", it.ID)
		box, style := s.BoxUnchecked, s.Muted
		title := ansi.Truncate(it.Title, 80, "...")
		if it.Completed {
			box, style = s.BoxChecked, s.Success
			title = s.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s", s.Muted.Render(idx), style.Render(box), title))
	}
	return out
}

func groupLines(items []model.Item) []string {
	s := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, s.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, s.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, s.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, s.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
