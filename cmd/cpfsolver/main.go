package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cpfsolver/internal/cpf"
	"cpfsolver/internal/report"
	"cpfsolver/internal/settings"
)

const farewell = "\nProgram interrupted by user."

// options holds the parsed command line.
type options struct {
	strict  bool
	workers int
	format  string
	config  string
	verbose bool
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("cpfsolver", pflag.ContinueOnError)
	fs.BoolVar(&o.strict, "strict", false, "reject characters after the CPF")
	fs.IntVarP(&o.workers, "workers", "w", 1, "goroutines used to search unknown body digits")
	fs.StringVarP(&o.format, "format", "f", "text", "report format: "+strings.Join(report.Names(), ", "))
	fs.StringVar(&o.config, "config", "", "settings file (default .cpfsolver/settings.yaml)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log search diagnostics to stderr")
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "cpfsolver: validate and complete Brazilian CPF numbers\n\n")
	fmt.Fprintf(w, "Usage:\n  cpfsolver [flags] [CPF ...]\n\n")
	fmt.Fprintf(w, "Write unknown digits as _ or a space, e.g. 111.444.777-__ or \"1234567  35\".\n")
	fmt.Fprintf(w, "Without arguments, cpfsolver prompts for one CPF.\n\n")
	fmt.Fprintf(w, "Flags:\n%s", fs.FlagUsages())
}

// newLogger writes console-encoded logs to w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// maxWorkers is the largest --workers value the search uses.
func maxWorkers() int {
	return 4 * runtime.GOMAXPROCS(0)
}

// loadSettings reads the --config file when given, otherwise the optional
// settings file under the working directory.
func loadSettings(path string) (*settings.Settings, error) {
	if path != "" {
		return settings.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working dir: %w", err)
	}
	return settings.Load(wd)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, fs)
			return nil
		}
		return fmt.Errorf("%w\n\nRun 'cpfsolver --help' for usage.", err)
	}

	cfg, err := loadSettings(o.config)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !fs.Changed("strict") {
		o.strict = cfg.StrictOr(o.strict)
	}
	if !fs.Changed("workers") {
		o.workers = cfg.WorkersOr(o.workers)
	}
	if !fs.Changed("format") {
		o.format = cfg.FormatOr(o.format)
	}
	if o.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", o.workers)
	}

	rep, err := report.Lookup(o.format)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, o.verbose)
	defer func() { _ = logger.Sync() }()
	if limit := maxWorkers(); o.workers > limit {
		logger.Warn("worker count clamped",
			zap.Int("requested", o.workers),
			zap.Int("limit", limit))
		o.workers = limit
	}
	logger.Debug("configured",
		zap.Bool("strict", o.strict),
		zap.Int("workers", o.workers),
		zap.String("format", rep.Name()))

	solver := cpf.NewSolver(
		cpf.WithStrict(o.strict),
		cpf.WithWorkers(o.workers),
		cpf.WithLogger(logger),
	)

	inputs := fs.Args()
	if len(inputs) == 0 {
		line, err := readInput(ctx, stdin, stdout)
		if errors.Is(err, errInterrupted) {
			fmt.Fprintln(stdout, farewell)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		inputs = []string{line}
	}

	for i, in := range inputs {
		if i > 0 {
			if err := rep.Separate(stdout); err != nil {
				return fmt.Errorf("report: %w", err)
			}
		}
		if err := rep.Report(ctx, stdout, solver, in); err != nil {
			if ctx.Err() != nil {
				logger.Debug("search cancelled", zap.String("input", in))
				fmt.Fprintln(stdout, farewell)
				return nil
			}
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
