package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"silicon/internal/config"
	"silicon/internal/driver"
	"silicon/internal/errors"
)

const (
	exitOK      = 0
	exitUsage   = -1
	exitFailure = -2
)

// errFailed marks a run that reported its own diagnostics. Any other error
// out of the command is a usage error.
var errFailed = stderrors.New("silicon: check failed")

var log = commonlog.GetLogger("silicon.cli")

type options struct {
	configPath string
	verbosity  int
	noColor    bool
	watch      bool
	maxErrors  int
	crossCheck bool
	printAST   bool
	lookup     string
	kind       string
	explain    string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "silicon <file.si>",
		Short: "Check a Silicon source file",
		Long: `silicon tokenizes and parses one Silicon source file, builds its
symbol table and reports every problem it finds.

Exit status is 0 on success, -1 on a usage error and -2 when the file
could not be read or parsed.`,
		Version:       version,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.explain != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.explain != "" {
				return explain(stdout, opts.explain)
			}
			return execute(cmd, opts, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $SILICON_CONFIG or ./silicon.toml)")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.watch, "watch", false, "check again every time the file is saved")
	flags.IntVar(&opts.maxErrors, "max-errors", config.DefaultMaxErrors, "diagnostics to show, 0 for all")
	flags.BoolVar(&opts.crossCheck, "cross-check", false, "also check the file against the reference grammar")
	flags.BoolVar(&opts.printAST, "print-ast", false, "print the parsed file")
	flags.StringVar(&opts.lookup, "lookup", "", "print the declaration with this name")
	flags.StringVar(&opts.kind, "kind", "", "restrict --lookup to a class, func or var")
	flags.StringVar(&opts.explain, "explain", "", "describe a diagnostic code such as E0102")

	return cmd
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, errFailed):
		return exitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
}

func execute(cmd *cobra.Command, opts *options, path string, stdout, stderr io.Writer) error {
	if opts.maxErrors < 0 {
		return fmt.Errorf("--max-errors must not be negative, got %d", opts.maxErrors)
	}
	switch opts.kind {
	case driver.KindAny, driver.KindClass, driver.KindFunction, driver.KindVariable:
	default:
		return fmt.Errorf("--kind must be one of class, func or var, got %q", opts.kind)
	}
	if opts.kind != "" && opts.lookup == "" {
		return fmt.Errorf("--kind requires --lookup")
	}

	cfg, source, err := loadConfig(opts.configPath)
	if err != nil {
		reportConfigError(stderr, source, err)
		return errFailed
	}

	flags := cmd.Flags()
	if flags.Changed("max-errors") {
		cfg.SetErrorLimit(opts.maxErrors)
	}
	if flags.Changed("cross-check") {
		cfg.CrossCheck = opts.crossCheck
	}
	if opts.noColor || !cfg.ColorEnabled() {
		color.NoColor = true
	}
	configureLogging(cfg, opts.verbosity)

	if err := cfg.CheckCompatibility(version); err != nil {
		reportConfigError(stderr, source, err)
		return errFailed
	}

	ok := check(path, cfg, opts, stdout, stderr)
	if !opts.watch {
		if !ok {
			return errFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := driver.Watch(ctx, path, func() { check(path, cfg, opts, stdout, stderr) }); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return errFailed
	}
	return nil
}

func explain(stdout io.Writer, code string) error {
	code = strings.ToUpper(code)
	category := errors.GetErrorCategory(code)
	if category == "Unknown" {
		return fmt.Errorf("unknown diagnostic code %q", code)
	}
	fmt.Fprintf(stdout, "%s (%s): %s\n", code, category, errors.GetErrorDescription(code))
	return nil
}

// loadConfig returns the configuration and the name of the file it came
// from, for error reporting.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	source := os.Getenv(config.EnvVar)
	if source == "" {
		source = "silicon.toml"
		for _, p := range []string{"silicon.toml", "silicon.yaml", "silicon.yml"} {
			if _, err := os.Stat(p); err == nil {
				source = p
				break
			}
		}
	}
	cfg, err := config.LoadFromEnv()
	return cfg, source, err
}

func reportConfigError(stderr io.Writer, source string, err error) {
	reporter := errors.NewErrorReporter(source, "")
	fmt.Fprint(stderr, reporter.FormatError(errors.InvalidConfig(source, err)))
}

func configureLogging(cfg *config.Config, verbose int) {
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity+verbose, path)
}

// check runs the front-end once and prints its outcome. It reports whether
// the file passed.
func check(path string, cfg *config.Config, opts *options, stdout, stderr io.Writer) bool {
	log.Debugf("checking %s", path)
	result := driver.Check(path, cfg)

	if len(result.Diagnostics) > 0 {
		fmt.Fprint(stderr, result.Report(cfg.ErrorLimit()))
	}
	if result.Failed() {
		color.New(color.FgRed).Fprintf(stderr, "Parsing failed after %s\n", formatDuration(result.Duration))
		return false
	}

	if opts.printAST {
		fmt.Fprintln(stdout, result.File.String())
	}

	if opts.lookup != "" {
		decl, err := driver.Lookup(result, opts.lookup, opts.kind)
		if err != nil {
			var diag errors.CompilerError
			if stderrors.As(err, &diag) {
				fmt.Fprint(stderr, errors.NewErrorReporter(path, result.Source).FormatError(diag))
			} else {
				fmt.Fprintf(stderr, "error: %v\n", err)
			}
			return false
		}
		fmt.Fprintln(stdout, decl.String())
	}

	color.New(color.FgGreen).Fprintf(stdout, "Successfully processed %s in %s\n", path, formatDuration(result.Duration))
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
