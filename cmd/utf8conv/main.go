// Package main provides the utf8conv command. It rewrites the Shift-JIS
// files directly inside one directory as UTF-8, in place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/isseis/go-utf8conv/internal/config"
	"github.com/isseis/go-utf8conv/internal/convert"
	"github.com/isseis/go-utf8conv/internal/logging"
	"github.com/isseis/go-utf8conv/internal/safefileio"
	"github.com/isseis/go-utf8conv/internal/terminal"
)

const programName = "utf8conv"

// Exit codes. Usage problems and a missing input path are reported but are
// not failures.
const (
	exitOK        = 0
	exitFailure   = 1
	exitFlagError = 2
)

var errUsage = errors.New("exactly one input path is required")

// cliOptions holds the parsed command line.
type cliOptions struct {
	inputPath  string
	configPath string
	logLevel   string
	logDir     string
	color      string
	keepGoing  bool
	quiet      bool
	// set records which flags were given explicitly, so that they can
	// override the config file.
	set map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return exitOK
		case errors.Is(err, errUsage):
			printUsage(stdout)
			return exitOK
		default:
			return exitFlagError
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	dir, err := convert.ResolveInputDir(opts.inputPath)
	if err != nil {
		if errors.Is(err, convert.ErrPathNotExist) {
			_, _ = fmt.Fprintln(stdout, "Path does not exist")
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	capabilities := terminal.NewCapabilities(terminal.Options{
		Color:    cfg.ColorMode(),
		Detector: terminal.DetectorOptions{ForceNonInteractive: opts.quiet},
	})

	runID := logging.NewRunID()
	logger, closeLog, err := logging.Setup(logging.Config{
		Level:        cfg.Level(),
		LogDir:       cfg.LogDir,
		RunID:        runID,
		Console:      stderr,
		Capabilities: capabilities,
		UseColor:     capabilities.SupportsColor(fileOf(stderr)),
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: failed to set up logging: %v\n", err)
		return exitFailure
	}
	defer func() {
		if err := closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := convert.NewRunner(
		convert.NewConverter(safefileio.NewFileSystem(), logger),
		convert.Options{
			Stdout:    stdout,
			Stderr:    stderr,
			UseColor:  capabilities.SupportsColor(fileOf(stdout)),
			KeepGoing: cfg.KeepGoing,
			Logger:    logger,
		},
	)

	summary, err := runner.Run(ctx, dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if len(summary.Failures) > 0 {
		return exitFailure
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{set: map[string]bool{}}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(stderr)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "path to an optional TOML config file")
	fs.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logDir, "log-dir", "", "directory to place a per-run JSON log (auto-named)")
	fs.StringVar(&opts.color, "color", config.DefaultColor, "color status lines and logs (auto, always, never)")
	fs.BoolVar(&opts.keepGoing, "keep-going", false, "continue with the next file after a failure and print a summary")
	fs.BoolVar(&opts.quiet, "quiet", false, "force non-interactive log output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if fs.NArg() != 1 {
		return nil, errUsage
	}
	opts.inputPath = fs.Arg(0)

	return opts, nil
}

// loadConfig reads the config file, if any, and applies explicit flags on top.
func loadConfig(opts *cliOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if opts.set["log-dir"] {
		cfg.LogDir = opts.logDir
	}
	if opts.set["color"] {
		cfg.Color = opts.color
	}
	if opts.set["keep-going"] {
		cfg.KeepGoing = opts.keepGoing
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] <input_path>\n", programName)
}

// fileOf returns w as an *os.File when it is one, so terminal checks can
// inspect it. Other writers are never terminals.
func fileOf(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
