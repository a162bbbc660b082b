package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/phroun/pushvm"
	"golang.org/x/term"
)

var version = "dev" // set via -ldflags at build time

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorReset  = "\x1b[0m"
)

// stderrSupportsColor checks if stderr is a terminal that supports color output
func stderrSupportsColor() bool {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	// Respect NO_COLOR environment variable (https://no-color.org/)
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// errorPrintf prints an error message to stderr, using color if supported
func errorPrintf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if stderrSupportsColor() {
		fmt.Fprintf(os.Stderr, "%s%s%s", colorYellow, message, colorReset)
	} else {
		fmt.Fprint(os.Stderr, message)
	}
}

// options collects the command line flags
type options struct {
	debug      bool
	categories string
	configPath string
	limit      int
	maxPoints  int
	seed       int64
	randPoints int
	file       string
	watch      bool
	repl       bool
	allowExec  bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	flag.BoolVar(&opts.debug, "d", false, "Enable debug output (short)")
	flag.StringVar(&opts.categories, "categories", "", "Comma separated log categories to trace (or \"all\")")
	flag.StringVar(&opts.configPath, "config", "", "Load configuration from a TOML or YAML file")
	flag.IntVar(&opts.limit, "limit", -1, "Step limit (overrides the configuration)")
	flag.IntVar(&opts.maxPoints, "max-points", -1, "EXEC stack point limit (overrides the configuration)")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	flag.IntVar(&opts.randPoints, "rand", 0, "Print a random program of at most N points and exit")
	flag.StringVar(&opts.file, "f", "", "Run the program in file")
	flag.BoolVar(&opts.watch, "watch", false, "Re-run the -f file whenever it changes")
	flag.BoolVar(&opts.repl, "i", false, "Start the interactive prompt")
	flag.BoolVar(&opts.allowExec, "allow-exec", false, "Enable EXEC.CMD (runs external commands)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		fmt.Println("pushr", version)
		return
	}

	config, err := buildConfig(opts)
	if err != nil {
		errorPrintf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.randPoints != 0:
		in := pushvm.New(config)
		gen := pushvm.NewCodeGenerator(in.State(), in.Instructions())
		if code, ok := gen.RandomCode(opts.randPoints); ok {
			fmt.Println(code)
		}
		return
	case opts.watch:
		if opts.file == "" {
			errorPrintf("Error: -watch requires -f\n")
			os.Exit(1)
		}
		if err := watchFile(ctx, opts.file, config); err != nil {
			errorPrintf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	case opts.repl:
		runREPL(config)
		return
	}

	source, err := readProgram(opts.file, flag.Args())
	if err != nil {
		errorPrintf("Error: %v\n", err)
		os.Exit(1)
	}
	if source == "" {
		runREPL(config)
		return
	}
	if !runProgram(ctx, config, source, os.Stdout) {
		os.Exit(2)
	}
}

// buildConfig layers the config file and flags over the defaults
func buildConfig(opts options) (*pushvm.Config, error) {
	config := pushvm.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := pushvm.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if opts.debug {
		config.Debug = true
	}
	if opts.categories != "" {
		config.Debug = true
		config.LogCategories = strings.Split(opts.categories, ",")
	}
	if opts.limit >= 0 {
		config.EvalPushLimit = opts.limit
	}
	if opts.maxPoints >= 0 {
		config.MaxExecPoints = opts.maxPoints
	}
	if opts.seed != 0 {
		config.Seed = opts.seed
	}
	if opts.allowExec {
		config.AllowExec = true
	}
	return config, config.Validate()
}

// readProgram takes the program from -f, the remaining arguments, or a
// redirected stdin, in that order
func readProgram(file string, args []string) (string, error) {
	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading program file: %w", err)
		}
		return string(content), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	stdinInfo, err := os.Stdin.Stat()
	if err == nil && (stdinInfo.Mode()&os.ModeCharDevice) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading from stdin: %w", err)
		}
		return string(content), nil
	}
	return "", nil
}

// runProgram runs source in a fresh interpreter and prints the final
// stacks. It reports whether the program halted normally.
func runProgram(ctx context.Context, config *pushvm.Config, source string, out io.Writer) bool {
	in := pushvm.New(config)
	if err := in.LoadString(source); err != nil {
		return false
	}
	status, err := in.RunContext(ctx)
	fmt.Fprint(out, in.State())
	if err != nil {
		var limitErr *pushvm.LimitError
		if errors.As(err, &limitErr) {
			errorPrintf("Stopped: %v\n", limitErr)
		} else {
			errorPrintf("Error: %v\n", err)
		}
	}
	return status == pushvm.StatusHalted
}

// watchFile runs file once, then again each time it is written
func watchFile(ctx context.Context, file string, config *pushvm.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger := pushvm.NewLoggerFromConfig(config)
	logger.NoticeCat(pushvm.CatIO, "watching %s", file)

	run := func() {
		source, err := os.ReadFile(abs)
		if err != nil {
			logger.ErrorCat(pushvm.CatIO, "%v", err)
			return
		}
		fmt.Printf("--- %s\n", file)
		runProgram(ctx, config, string(source), os.Stdout)
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == abs && event.Has(fsnotify.Write|fsnotify.Create) {
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.ErrorCat(pushvm.CatIO, "watch: %v", err)
		}
	}
}

func showUsage() {
	usage := `Usage: pushr [options] [program...]
       pushr [options] -f program.push
       pushr [options] < program.push

Run a Push program and print the final stacks.

Options:
  -d, -debug          Enable debug output
  -categories LIST    Trace the given log categories ("all" for every one)
  -config FILE        Load configuration from FILE (.toml, .yaml or .yml)
  -limit N            Stop after N steps
  -max-points N       Stop when the EXEC stack holds more than N points
  -seed N             Seed the random generator
  -rand N             Print a random program of at most N points
  -f FILE             Run the program in FILE
  -watch              Re-run the -f program whenever it changes
  -i                  Start the interactive prompt
  -allow-exec         Enable EXEC.CMD (runs external commands)
  -version            Print version and exit

With no program and no redirected input the interactive prompt starts.
`
	fmt.Fprint(os.Stderr, usage)
}
