package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoview/internal/auth"
	"github.com/idilsaglam/todoview/internal/config"
	"github.com/idilsaglam/todoview/internal/fetch"
	"github.com/idilsaglam/todoview/internal/logging"
	"github.com/idilsaglam/todoview/internal/store/jsonstore"
	"github.com/idilsaglam/todoview/internal/tui"
	"github.com/idilsaglam/todoview/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks bad invocations so Run can exit with ExitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// rootFlags tune behavior from persistent flags; empty values defer to config.
type rootFlags struct {
	configPath string
	url        string
	file       string
	theme      string
	color      string
	logLevel   string
	logFile    string
	debug      bool
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	flags    rootFlags
	cfg      config.Config
	base     zerolog.Logger
	logger   zerolog.Logger
	closeLog func() error
	stderr   io.Writer
}

// Run dispatches subcommands and returns an exit code.
func Run(args []string) int {
	return RunWithIO(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO is Run with explicit streams, for tests.
func RunWithIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.Fail(stderr, err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `todoview --help` for usage"))
			return ExitUsage
		}
		return ExitError
	}
	return ExitOK
}

// NewRootCmd creates the root command. With no subcommand it opens the browser.
func NewRootCmd() *cobra.Command {
	a := &app{closeLog: func() error { return nil }}

	cmd := &cobra.Command{
		Use:           "todoview",
		Short:         "Browse a remote todo list ten items at a time",
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.setup(interactive(cmd))
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.browse(cmd.Context())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.todoview/config.yaml)")
	f.StringVar(&a.flags.url, "url", "", "todo list endpoint")
	f.StringVar(&a.flags.file, "file", "", "read items from a JSON snapshot instead of the endpoint")
	f.StringVar(&a.flags.theme, "theme", "", "classic, neon or mono")
	f.StringVar(&a.flags.color, "color", "", "auto, always or never")
	f.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&a.flags.logFile, "log-file", "", "write logs to this file")
	f.BoolVar(&a.flags.debug, "debug", false, "shorthand for --log-level debug")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	cmd.AddCommand(newBrowseCmd(a), newPageCmd(a), newFetchCmd(a), newAuthCmd(a))
	return cmd
}

const rootCmdExample = `  # Browse the default endpoint
  todoview

  # Print page 3 without the interactive view
  todoview page 3

  # Save a snapshot and browse it offline
  todoview fetch --out todos.json
  todoview --file todos.json`

// interactive reports whether cmd takes over the terminal.
func interactive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "browse"
}

// setup merges config, environment and flags, then applies theme and logging.
func (a *app) setup(interactive bool) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.url != "" {
		cfg.Source.URL = a.flags.url
		cfg.Source.File = ""
	}
	if a.flags.file != "" {
		cfg.Source.File = a.flags.file
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.color != "" {
		cfg.UI.Color = a.flags.color
	}
	if a.flags.logLevel != "" {
		cfg.Logging.Level = a.flags.logLevel
	}
	if a.flags.debug {
		cfg.Logging.Level = "debug"
	}
	if a.flags.logFile != "" {
		cfg.Logging.File = a.flags.logFile
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}

	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorMode(cfg.UI.Color)

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		File:   cfg.Logging.File,
	}
	if !interactive {
		logCfg.Output = a.stderr
	}
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.base = logger
	a.logger = logging.NewLogger(logger, "cli")
	a.closeLog = closeLog
	a.logger.Debug().Str("theme", cfg.UI.Theme).Str("source", sourceName(cfg)).Msg("Configured")
	return nil
}

// loader picks the snapshot file when one is configured, else the endpoint.
func (a *app) loader() (tui.Loader, error) {
	if a.cfg.Source.File != "" {
		return jsonstore.Source{Path: a.cfg.Source.File}, nil
	}
	client, err := a.remote()
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (a *app) remote() (*fetch.Client, error) {
	ti, err := auth.GetToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	cfg := fetch.Config{URL: a.cfg.Source.URL, Timeout: a.cfg.Source.Timeout}
	switch {
	case ti == nil:
	case ti.Expired(time.Now()):
		a.logger.Warn().Time("expires_at", *ti.ExpiresAt).Msg("Saved token expired, sending none")
	default:
		cfg.Token = ti.Token
	}
	return fetch.New(cfg, nil, a.base), nil
}

func sourceName(cfg config.Config) string {
	if cfg.Source.File != "" {
		return "file:" + cfg.Source.File
	}
	return cfg.Source.URL
}
