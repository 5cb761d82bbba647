package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ideas-cli/internal/config"
	"ideas-cli/internal/format"
	"ideas-cli/internal/logging"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string
	LogLevel   string
	LogFile    string

	cfg    *config.Config
	logger *logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ideas",
		Short:        "Projects, buckets and ideas (local-first) CLI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a project and make it current
  ideas projects create "Garden" --use

  # Add an idea to the first bucket
  ideas ideas add "Plant tomatoes" --desc "After the last frost"

  # Show the board
  ideas board

  # Show a project directly (shortcut for: ideas projects show <project-id>)
  ideas 3f2a9c1e
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.logger.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to the data dir (default: $IDEAS_DIR or ~/.ideas)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|badger|memory; default: $IDEAS_BACKEND or sqlite)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("IDEAS_FORMAT", "text"), "Output format (text|json)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (default: $IDEAS_LOG_LEVEL or warn)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append logs to this file instead of stderr")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newBucketsCmd(app))
	cmd.AddCommand(newIdeasCmd(app))
	cmd.AddCommand(newExtCmd(app))
	cmd.AddCommand(newChecklistCmd(app))
	cmd.AddCommand(newImagesCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newUICmd(app))

	return cmd
}

// configure merges environment configuration with flags and builds the logger.
func (app *App) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	if d := strings.TrimSpace(app.Dir); d != "" {
		cfg.Dir = d
	}
	if b := strings.TrimSpace(app.Backend); b != "" {
		if _, err := store.ParseBackendKind(b); err != nil {
			return writeErr(cmd, err)
		}
		cfg.Backend = b
	}
	if l := strings.TrimSpace(app.LogLevel); l != "" {
		cfg.LogLevel = l
	}
	if f := strings.TrimSpace(app.LogFile); f != "" {
		cfg.LogFile = f
	}
	app.cfg = cfg

	lg, err := logging.New().ToWriter(cmd.ErrOrStderr()).ToPath(cfg.LogFile).Level(cfg.LogLevel).Make()
	if err != nil {
		return writeErr(cmd, fmt.Errorf("logger: %w", err))
	}
	app.logger = lg
	return nil
}

// notifier shows reports on stderr. With a log file they are recorded there too.
func (app *App) notifier(cmd *cobra.Command) notify.Notifier {
	w := notify.NewWriter(cmd.ErrOrStderr())
	if app.cfg == nil || app.cfg.LogFile == "" {
		return w
	}
	return notify.Tee(w, notify.NewLog(app.logger.Logger))
}

func (app *App) storeOptions(cmd *cobra.Command) store.Options {
	return store.Options{
		Notifier:     app.notifier(cmd),
		Logger:       &app.logger.Logger,
		SaveDebounce: app.cfg.SaveDebounce,
	}
}

// openStore opens the configured backend and a ready context over it. The returned
// close func flushes pending changes.
func (app *App) openStore(cmd *cobra.Command, opts store.Options) (*store.Context, func() error, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := (store.Paths{Dir: app.cfg.Dir}).Ensure(); err != nil {
		return nil, nil, err
	}
	b, err := store.OpenBackend(ctx, app.cfg.BackendKind(), app.cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	c := store.NewContext(opts)
	if err := c.Open(ctx, b); err != nil {
		_ = b.Close()
		return nil, nil, err
	}
	return c, func() error { return c.Close(context.Background()) }, nil
}

// run opens the store, calls fn and writes its result. Changes are saved before
// the result is printed.
func (app *App) run(cmd *cobra.Command, fn func(c *store.Context) (any, error)) error {
	c, closeStore, err := app.openStore(cmd, app.storeOptions(cmd))
	if err != nil {
		return writeErr(cmd, err)
	}
	out, err := fn(c)
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	if err != nil {
		return writeErr(cmd, err)
	}
	if out == nil {
		return nil
	}
	return writeOut(cmd, app, out)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
