// Package cmd implements the reveal CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, snapshot, frame, content).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-drift/reveal/cmd/reveal/internal/config"
	"github.com/go-drift/reveal/cmd/reveal/internal/logs"
	"github.com/go-drift/reveal/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Env carries the global flags and I/O streams of one invocation.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Dir is searched for reveal.yaml and anchors relative paths.
	Dir        string
	ConfigPath string
	Verbose    bool
}

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(env *Env, args []string) error
}

var rootCmd = &Command{
	Name:  "reveal",
	Short: "Reveal - timed progressive disclosure pages",
	Long: `Reveal plays the about and technologies pages: a typed title, rotating
facts, a visit counter, staggered technology cards and a looping code
typist.

Use "reveal <command> --help" for more information about a command.`,
	Usage: "reveal [--config FILE] [--verbose] <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands    = make(map[string]*Command)
	subCommands []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	subCommands = append(subCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	return ExecuteArgs(&Env{Stdout: os.Stdout, Stderr: os.Stderr, Dir: dir}, os.Args[1:])
}

// ExecuteArgs runs the CLI with args.
func ExecuteArgs(env *Env, args []string) error {
	if len(args) == 0 {
		printHelp(env.Stdout)
		return nil
	}

	// Handle global flags
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filteredArgs) > 0 {
			filteredArgs = append(filteredArgs, arg)
			continue
		}
		switch arg {
		case "-h", "--help", "help":
			printHelp(env.Stdout)
			return nil
		case "-v", "--version", "version":
			fmt.Fprintf(env.Stdout, "reveal version %s (built %s)\n", Version, BuildTime)
			return nil
		case "--verbose":
			env.Verbose = true
		default:
			value, next, ok, err := takeFlag(args, i, "config")
			if err != nil {
				return err
			}
			if ok {
				env.ConfigPath = value
				i = next
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(env.Stdout)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(env.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(env.Stderr)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(env.Stdout, cmd)
			return nil
		}
	}

	return cmd.Run(env, cmdArgs)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range subCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Read FILE instead of ./reveal.yaml")
	fmt.Fprintln(w, "  --verbose            Log at debug level")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s*              Override reveal.yaml settings (e.g. REVEAL_TIMINGS_CARD=100ms)\n", config.EnvPrefix)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  reveal run technologies              Watch the technologies page")
	fmt.Fprintln(w, "  reveal snapshot about --at 3s        Print the about page state at 3s")
	fmt.Fprintln(w, "  reveal frame technologies --at 1s    Render a PNG frame")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}

// resolve loads the configuration for this invocation.
func (env *Env) resolve() (*config.Resolved, error) {
	return config.Resolve(env.Dir, env.ConfigPath)
}

// logger builds the logger for cfg and installs it as the slog default and
// the error handler. terminal selects whether records also go to stderr.
func (env *Env) logger(cfg *config.Resolved, terminal bool) (*logs.Logger, error) {
	level := cfg.LogLevel
	if env.Verbose {
		level = slog.LevelDebug
	}
	opts := logs.Options{
		Level:   level,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Journal: cfg.LogJournal,
	}
	if terminal {
		opts.Terminal = env.Stderr
	}
	logger, err := logs.New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.Logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger.Logger, Verbose: env.Verbose})
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}
	return logger, nil
}

// takeFlag reports whether args[i] is --name VALUE or --name=VALUE. next is
// the index of the last argument consumed.
func takeFlag(args []string, i int, name string) (value string, next int, ok bool, err error) {
	flag := "--" + name
	arg := args[i]
	if value, found := strings.CutPrefix(arg, flag+"="); found {
		return value, i, true, nil
	}
	if arg != flag {
		return "", i, false, nil
	}
	if i+1 >= len(args) {
		return "", i, true, fmt.Errorf("%s requires a value", flag)
	}
	return args[i+1], i + 1, true, nil
}

// takeDuration is takeFlag for duration values.
func takeDuration(args []string, i int, name string) (time.Duration, int, bool, error) {
	value, next, ok, err := takeFlag(args, i, name)
	if !ok || err != nil {
		return 0, next, ok, err
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, next, true, fmt.Errorf("--%s: %w", name, err)
	}
	if d < 0 {
		return 0, next, true, fmt.Errorf("--%s must not be negative", name)
	}
	return d, next, true, nil
}
