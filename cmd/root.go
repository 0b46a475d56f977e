package cmd

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/fs-cli/internal/command"
	"github.com/quocvuong92/fs-cli/internal/config"
	"github.com/quocvuong92/fs-cli/internal/constants"
	"github.com/quocvuong92/fs-cli/internal/display"
	"github.com/quocvuong92/fs-cli/internal/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// App holds the application state
type App struct {
	cfg     *config.Config
	noColor bool

	runID      string
	logger     *logging.Logger
	printer    *display.Printer
	dispatcher *command.Dispatcher

	// reported counts errors written by dispatched commands
	reported int
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:   config.NewConfig(),
		runID: uuid.NewString(),
	}
}

// ExitCode is 0 unless strict mode is on and an error was reported.
func (app *App) ExitCode() int {
	if app.cfg.Strict && app.reported > 0 {
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	app := NewApp()
	if err := NewRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(app.ExitCode())
}

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "A small filesystem utility: echo, cat, ls, find and minigrep",
		Long: `fs-cli bundles five filesystem commands.

Errors are written to stderr and do not stop the program; the exit status
is 0 unless --strict is set and an error was reported.

Examples:
  fs-cli echo "hello"
  fs-cli cat notes.txt
  fs-cli cat -r README.md               # Render Markdown
  fs-cli ls /tmp
  fs-cli find . main.go
  fs-cli minigrep TODO main.go`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.StringVar(&app.cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error, none (default: warn)")
	flags.StringVar(&app.cfg.LogFormat, "log-format", "", "Log format: text or json (default: text)")
	flags.StringVar(&app.cfg.Color, "color", "", "Color output: auto, always, never (default: auto)")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&app.cfg.Strict, "strict", false, "Exit with status 1 if any error was reported")
	flags.StringVar(&app.cfg.ConfigPath, "config", "", "Config file (default: search .fs-cli/, ~/.config/fs-cli/)")

	rootCmd.AddCommand(newEchoCmd(app))
	rootCmd.AddCommand(newCatCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newFindCmd(app))
	rootCmd.AddCommand(newGrepCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

// setup resolves configuration and wires the logger, printer and dispatcher.
func (app *App) setup(cmd *cobra.Command) error {
	if app.noColor {
		app.cfg.Color = config.ColorNever
	}
	if err := app.cfg.Validate(); err != nil {
		return err
	}

	app.logger = logging.New(logging.Options{
		Level:  app.cfg.Level,
		Format: app.cfg.Format,
		Output: cmd.ErrOrStderr(),
	})
	log := app.logger.WithFields(logging.Fields{"run_id": app.runID})
	if app.cfg.LoadedFrom != "" {
		log.Info("loaded config file", logging.Fields{"path": app.cfg.LoadedFrom})
	}

	app.printer = display.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), display.ParseColorMode(app.cfg.Color))
	app.dispatcher = command.NewDispatcher(app.printer, log, command.Options{
		SkipUnreadable: app.cfg.SkipUnreadable,
		Render:         app.cfg.Render,
		WordWrap:       app.cfg.WordWrap,
	})
	return nil
}

func (app *App) dispatch(c command.Command) {
	app.reported += app.dispatcher.Dispatch(c)
}
