package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jobtrack/internal/app"
	configpkg "jobtrack/internal/config"
	"jobtrack/internal/store"
	themepkg "jobtrack/internal/theme"
	"jobtrack/internal/tracker"
	"jobtrack/internal/tui"
	"jobtrack/internal/version"
)

type cliApp struct {
	configFlag string
	configPath string
	dataPath   string
	logLevel   string

	cfg     configpkg.Config
	logger  *slog.Logger
	logFile *os.File
}

func main() {
	a := &cliApp{}
	err := newRootCmd(a).Execute()
	a.Close()
	if err != nil {
		fatal(err)
	}
}

func newRootCmd(a *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           app.Name,
		Short:         "Track job applications from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive tracker
  jobtrack

  # Use a different data file
  jobtrack --data ~/jobs/2024.json

  # Print the collection and its statistics
  jobtrack list
  jobtrack stats
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(a, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.dataPath, "data", envOr("JOBTRACK_DATA", ""), "Path to the applications JSON file (default from config, then ./applications.json)")
	cmd.PersistentFlags().StringVar(&a.configFlag, "config", envOr("JOBTRACK_CONFIG", ""), "Path to config.toml (default ~/.config/jobtrack/config.toml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides config")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newBackupCmd(a))
	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newThemeCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup loads the config and opens the log file. The TUI owns the terminal,
// so logs always go to a file.
func (a *cliApp) setup() error {
	var (
		cfg configpkg.Config
		err error
	)
	if a.configFlag == "" {
		if a.configPath, err = configpkg.Path(); err != nil {
			return err
		}
		cfg, err = configpkg.Load()
	} else {
		a.configPath = a.configFlag
		cfg, err = configpkg.LoadFrom(a.configFlag)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	var w io.Writer = io.Discard
	if logPath, err := app.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				a.logFile = f
				w = f
			}
		}
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *cliApp) saveConfig(cfg configpkg.Config) error {
	if a.configFlag == "" {
		return configpkg.Save(cfg)
	}
	return configpkg.SaveTo(a.configFlag, cfg)
}

func (a *cliApp) Close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// resolvedDataPath applies flag, then env (both via --data), then config.
func (a *cliApp) resolvedDataPath() (string, error) {
	p := a.dataPath
	if strings.TrimSpace(p) == "" {
		p = a.cfg.DataFile
	}
	if strings.TrimSpace(p) == "" {
		p = configpkg.DefaultDataFile
	}
	return app.ResolveDataPath(p)
}

func (a *cliApp) openStore() (*store.FileStore, error) {
	p, err := a.resolvedDataPath()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(p, a.logger), nil
}

func runApp(a *cliApp, warn io.Writer) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	unlock, err := st.Lock()
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return fmt.Errorf("%w (%s)", err, st.Path())
		}
		return err
	}
	defer unlock()

	apps, err := st.Load()
	if err != nil {
		return err
	}
	a.logger.Info("starting", "version", version.Value, "data", st.Path(), "count", len(apps))

	tr := tracker.New(apps, st, tracker.WithLogger(a.logger))
	err = tui.RunApp(tr, tui.Options{
		Theme:    resolveUITheme(a.cfg, warn),
		Version:  version.Value,
		DataPath: st.Path(),
	})
	a.logger.Info("exiting", "count", tr.Len(), "error", err)
	return err
}

func resolveUITheme(cfg configpkg.Config, w io.Writer) tui.UITheme {
	active, err := themepkg.LoadActive(cfg)
	if err != nil {
		fmt.Fprintf(w, "warning: loading theme %q failed, using default: %v\n", cfg.Theme.Active, err)
	} else if len(active.Defaulted) > 0 {
		slog.Debug("theme keys defaulted", "theme", active.ID, "keys", active.Defaulted)
	}
	return tui.UIThemeFromResolved(themepkg.ResolveForTerminal(active.Colors, themepkg.DetectTrueColor()))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
