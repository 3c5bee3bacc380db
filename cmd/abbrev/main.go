// Package main is the entry point for the abbrev editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/abbrev/internal/app"
	"github.com/dshills/abbrev/internal/config"
	"github.com/dshills/abbrev/internal/engine/buffer"
	"github.com/dshills/abbrev/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options are the global flags.
type options struct {
	ConfigPath string
	AbbrevFile string
	LogLevel   string
	Args       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cmd, args := "", opts.Args
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "expand":
		return withApp(cfg, nil, func(a *app.App) int {
			return runExpand(a, args[1:], os.Stdout, os.Stderr)
		})
	case "list":
		return withApp(cfg, nil, func(a *app.App) int {
			return runList(a, os.Stdout, os.Stderr)
		})
	default:
		// stderr belongs to the terminal while the editor runs
		var logger *logging.Logger
		if cfg.Logging.File == "" {
			logger = logging.Null()
		}
		return withApp(cfg, logger, func(a *app.App) int {
			return runEditor(a, args)
		})
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.AbbrevFile, "abbrev", "", "Abbreviation file (overrides config)")
	flag.StringVar(&opts.AbbrevFile, "a", "", "Abbreviation file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "abbrev - abbreviation-expanding text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  abbrev [options] [file]\n")
		fmt.Fprintf(os.Stderr, "  abbrev [options] expand -text TEXT -cursor N[,N...] [-char C]\n")
		fmt.Fprintf(os.Stderr, "  abbrev [options] list\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  abbrev notes.txt                          Edit a file\n")
		fmt.Fprintf(os.Stderr, "  abbrev expand -text 'btw' -cursor 3       Type a space after btw\n")
		fmt.Fprintf(os.Stderr, "  abbrev -a ./abbrevs list                  Show a table\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("abbrev %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Args = flag.Args()
	return opts
}

// loadConfig reads the config file and applies flag overrides, which
// beat both the file and the environment.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.AbbrevFile != "" {
		cfg.Abbrev.File = opts.AbbrevFile
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	return cfg, nil
}

// withApp builds the App, runs fn and tears the App down. A nil logger
// means one built from cfg.
func withApp(cfg *config.Config, logger *logging.Logger, fn func(a *app.App) int) int {
	var appOpts []app.Option
	if logger != nil {
		appOpts = append(appOpts, app.WithLogger(logger))
	}
	a, err := app.New(cfg, appOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer a.Close()
	return fn(a)
}

func runList(a *app.App, stdout, stderr io.Writer) int {
	if _, err := a.Store().Table().WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runEditor(a *app.App, files []string) int {
	var session *app.Session
	switch len(files) {
	case 0:
		session = a.NewSession(buffer.NewBuffer())
	case 1:
		s, err := a.OpenSession(files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		session = s
	default:
		fmt.Fprintf(os.Stderr, "Error: at most one file may be opened\n")
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	term := app.NewTerminal(screen, session, a.Logger())

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			term.Interrupt()
		}
	}()

	runErr := term.Run()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}
