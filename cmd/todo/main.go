package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

type options struct {
	Store    string `short:"s" long:"store" env:"TADA_STORE" description:"store: sqlite file, postgres:// URL, *.json file or memory"`
	Config   string `short:"c" long:"config" env:"TADA_CONFIG" description:"TOML config file (default ~/.tada/config.toml)"`
	Theme    string `long:"theme" env:"TADA_THEME" choice:"light" choice:"dark" description:"theme used until one is stored"`
	LogFile  string `long:"log-file" env:"TADA_LOG_FILE" description:"log file for the interactive screen"`
	LogLevel string `long:"log-level" env:"TADA_LOG_LEVEL" description:"debug, info, warn or error"`
	Group    bool   `short:"g" long:"group" description:"group output by pending/done"`
	Debug    bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version  bool   `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag|flags.PassAfterNonOption)
	p.Usage = "[options] [subcommand] [args]"
	args, err := p.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			fmt.Fprintln(os.Stderr)
			cli.PrintHelp()
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Printf("tada %s\n", revision)
		os.Exit(0)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, opts, args)
	stop()
	os.Exit(code)
}

// loadConfig reads the config file and lays flags and env vars over it.
func loadConfig(opts options) (config.Config, error) {
	path := opts.Config
	if path == "" {
		if dir, err := config.Dir(); err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if opts.Store != "" {
		cfg.Store = opts.Store
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	if cfg.Store == "" {
		return cfg, errors.New("no store configured, use --store")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, opts options, args []string) int {
	// the interactive screen owns the terminal, so its logs go to a file
	var logOut io.Writer = os.Stderr
	if interactive(args) && cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			ui.Fail(err.Error())
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Caller: opts.Debug})
	log.SetDefault(logger)

	kv, err := app.OpenStore(cfg.Store)
	if err != nil {
		logger.Error("open store", "store", cfg.Store, "err", err)
		ui.Fail(err.Error())
		return 1
	}

	a := app.New(ctx, kv, app.Options{Logger: logger, DefaultTheme: defaultTheme(cfg)})
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close", "err", err)
		}
	}()
	ui.SetTheme(a.Theme())

	return cli.Run(ctx, a, args, cli.Options{Group: opts.Group})
}

func interactive(args []string) bool {
	return len(args) == 0 || args[0] == "tui"
}

// defaultTheme is the configured theme, or the terminal's when none is configured.
func defaultTheme(cfg config.Config) model.Theme {
	if cfg.Theme != "" {
		if th, err := model.ParseTheme(cfg.Theme); err == nil {
			return th
		}
		log.Warn("ignoring bad theme in config", "theme", cfg.Theme)
	}
	return ui.DetectTheme()
}
