// Package main is the bioview command: a terminal browser and editor for the
// readme files that document research data folders.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Cyclone1070/bioview/internal/app"
	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/logger"
	"github.com/Cyclone1070/bioview/internal/tool/backup"
	"github.com/Cyclone1070/bioview/internal/tool/file"
	"github.com/Cyclone1070/bioview/internal/tool/fsutil"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/tool/scan"
	"github.com/Cyclone1070/bioview/internal/ui"
	"github.com/Cyclone1070/bioview/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
)

// LogFile is the TUI log file name inside the config dir.
const LogFile = "bioview.log"

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	verbose    bool
}

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config     *config.Config
	ConfigDir  string
	State      *config.State
	FS         *fsutil.OSFileSystem
	Dispatcher *app.Dispatcher
	Logger     *slog.Logger

	closeLog func() error
}

// Close releases the event channel and the log file.
func (d *Dependencies) Close() error {
	d.Dispatcher.Close()
	return d.closeLog()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "bioview",
		Short: "Browse and edit the readme files of research data folders",
		Long: `bioview finds the readme files below a work folder and lets you
read, edit and create them. Files in legacy encodings are detected and
decoded; every day's first save keeps a dated backup of the previous version.

Run without a command to open the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default: ~/.config/bioview/config.json)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(
		newScanCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newSaveCmd(opts),
		newCreateCmd(opts),
		newBackupsCmd(opts),
		newSearchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig loads the config from --config or the standard location.
func loadConfig(opts *globalOptions) (*config.Config, string, error) {
	loader := config.NewLoader()
	dir, err := loader.Dir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to locate config dir: %w", err)
	}

	var cfg *config.Config
	if opts.configPath != "" {
		cfg, err = loader.LoadFrom(opts.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	if opts.verbose {
		cfg.Logger.Level = "debug"
	}
	return cfg, dir, nil
}

// buildDependencies wires the tools behind a Dispatcher. With forTUI set the
// logger writes to the log file instead of the terminal.
func buildDependencies(opts *globalOptions, forTUI bool) (*Dependencies, error) {
	cfg, dir, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	var log *slog.Logger
	var closeLog func() error
	if forTUI {
		log, closeLog, err = logger.ForTerminalUI(cfg.Logger, filepath.Join(dir, LogFile))
	} else {
		log, closeLog, err = logger.New(cfg.Logger)
	}
	if err != nil {
		return nil, err
	}

	osFS := fsutil.NewOSFileSystem()

	state, err := config.LoadState(osFS, filepath.Join(dir, config.StateFile))
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	loader, err := file.NewLoader(osFS, cfg, log)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("invalid fallback encoding: %w", err)
	}

	dispatcher := app.NewDispatcher(log)
	_, err = app.NewService(app.Deps{
		Config:  cfg,
		State:   state,
		FS:      osFS,
		Loader:  loader,
		Rotator: backup.NewRotator(osFS, log),
		Creator: readme.NewCreator(osFS, log),
		Scanner: scan.NewScanner(osFS, cfg, log),
		Tracker: fsutil.NewChecksumTracker(),
		Logger:  log,
	}, dispatcher)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	log.Debug("bioview started", "config_dir", dir, "fallback_encoding", loader.FallbackName())

	return &Dependencies{
		Config:     cfg,
		ConfigDir:  dir,
		State:      state,
		FS:         osFS,
		Dispatcher: dispatcher,
		Logger:     log,
		closeLog:   closeLog,
	}, nil
}

func runInteractive(ctx context.Context, opts *globalOptions) error {
	deps, err := buildDependencies(opts, true)
	if err != nil {
		return err
	}
	defer deps.Close()

	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	userInterface := ui.NewUI(ctx, deps.Dispatcher, deps.Config, deps.State.WorkFolder(), services.NewGlamourRenderer(), spinnerFactory)

	if err := userInterface.Start(); err != nil {
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}
