// Package main provides the CLI entry point for vedit.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/vedit"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/reporter"
)

const (
	appName    = "vedit"
	appVersion = "0.1.0"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
	logDir  string
	noLog   bool
	json    bool
}

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Basic video editing: split, combine, convert and more",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose output for troubleshooting")
	pf.StringVarP(&g.logDir, "log-dir", "l", logging.DefaultLogDir(), "Log directory")
	pf.BoolVar(&g.noLog, "no-log", false, "Disable log file creation")
	pf.BoolVar(&g.json, "json", false, "Emit NDJSON events on stdout instead of terminal output")

	root.AddCommand(
		newSplitCmd(g),
		newCombineCmd(g),
		newReplaceAudioCmd(g),
		newThumbnailCmd(g),
		newConvertCmd(g),
		newExtractAudioCmd(g),
		newSegmentCmd(g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
}

// session holds the per-run logger and editor.
type session struct {
	editor *vedit.Editor
	logger *logging.Logger
}

func (s *session) close() {
	_ = s.logger.Close()
}

// newSession sets up logging and reporting for command and builds an editor
// from the environment plus opts.
func newSession(cmd *cobra.Command, g *globalFlags, opts ...vedit.Option) (*session, error) {
	logger, err := logging.Setup(g.logDir, cmd.Name(), g.verbose, g.noLog)
	if err != nil {
		return nil, errors.NewIOError("failed to set up logging", err)
	}
	if logger == nil {
		logger = logging.New(io.Discard, g.verbose)
	}

	var display reporter.Reporter
	if g.json {
		display = reporter.NewJSONReporterWithWriter(cmd.OutOrStdout(), logger.RunID())
	} else {
		display = reporter.NewTerminalReporterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), g.verbose)
	}
	rep := reporter.NewCompositeReporter(display, reporter.NewLogReporter(logger))

	all := append([]vedit.Option{vedit.WithEnvironment(), vedit.WithReporter(rep), vedit.WithLogger(logger)}, opts...)
	ed, err := vedit.New(all...)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	if path := logger.FilePath(); path != "" {
		rep.Verbose("Log file: " + path)
	}
	return &session{editor: ed, logger: logger}, nil
}

// finish logs err and hands it back for cobra.
func (s *session) finish(err error) error {
	if err != nil && errors.IsCancelled(err) {
		s.logger.Warn("cancelled")
		return fmt.Errorf("cancelled")
	}
	if err != nil {
		s.logger.Error("%v", err)
	}
	return err
}
