package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"geoview/internal/config"
	"geoview/internal/tui"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options are the flags shared by every command.
type options struct {
	configPath string
	logFile    string
	verbose    bool
}

// Execute runs the geoview CLI and returns an error if any command fails.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var opts options
	var logCloser io.Closer

	root := &cobra.Command{
		Use:          "geoview [files...]",
		Short:        "geoview is a terminal map viewer",
		Long:         `geoview renders GeoJSON, KML, CSV and WKT files as a braille map in the terminal, with pan, zoom, selection and identify tools.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			var w io.Writer = io.Discard
			if opts.logFile != "" {
				f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				w, logCloser = f, f
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd.Context(), opts, args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("geoview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInfoCmd(&opts))
	return root
}

func runViewer(ctx context.Context, opts options, paths []string) error {
	logger := loggerFromContext(ctx)
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "projection", cfg.Projection, "debounce", cfg.Debounce())

	m := tui.NewWithPaths(tui.Options{Config: cfg, Logger: logger}, paths...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
