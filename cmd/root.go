// Package cmd implements the CLI command structure for tasktracker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktracker/internal/config"
	"github.com/nibzard/tasktracker/internal/logging"
	"github.com/nibzard/tasktracker/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errUsage marks a command line that does not match any command's shape.
var errUsage = errors.New("usage error")

// cli carries the resolved configuration and output streams for one invocation.
type cli struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// Run executes the tasktracker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	c := &cli{
		cws:    cws,
		cfg:    cws.Config,
		logger: logging.NewFromConfig(stderr, cws.Config.LogLevel, cws.Config.LogFormat, cws.Config.LogTimestamps, cws.Config.LogCaller),
		stdout: stdout,
		stderr: stderr,
	}
	for _, w := range cws.Warnings {
		c.logger.Warn(w)
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		fmt.Fprintln(stderr, "You must write a command.")
		printUsage(fs, stderr)
		return fmt.Errorf("%w: no command given", errUsage)
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]
	c.logger.Debug("running command", "command", subcommand, "file", c.cfg.TaskFile)

	// Execute the subcommand
	switch subcommand {
	case "add":
		return c.addCommand(remainingArgs)
	case "list", "ls":
		return c.listCommand(remainingArgs)
	case "update":
		return c.updateCommand(remainingArgs)
	case "delete", "rm":
		return c.deleteCommand(remainingArgs)
	case "mark-todo":
		return c.markCommand(subcommand, remainingArgs, task.StatusToDo)
	case "mark-in-progress":
		return c.markCommand(subcommand, remainingArgs, task.StatusInProgress)
	case "mark-done":
		return c.markCommand(subcommand, remainingArgs, task.StatusDone)
	case "export":
		return c.exportCommand(remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return c.doctorCommand(remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(stdout)
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("%w: unknown command: %s", errUsage, subcommand)
	}
}

// checkArgs verifies the argument count of a command and prints its usage
// line to stderr when it does not fit.
func (c *cli) checkArgs(name string, args []string, minArgs, maxArgs int, usage string) error {
	if len(args) >= minArgs && len(args) <= maxArgs {
		return nil
	}
	fmt.Fprintf(c.stderr, "Usage: tasktracker %s\n", usage)
	return fmt.Errorf("%w: invalid number of arguments for %q", errUsage, name)
}

func (c *cli) openStore() (*task.Store, error) {
	return task.NewStore(c.cfg.TaskFile, task.WithLogger(c.logger))
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasktracker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Task Tracker - track tasks in a local JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktracker [options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, line := range commandHelp {
		fmt.Fprintf(w, "  %-32s %s\n", line[0], line[1])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statuses: "+strings.Join(statusTokens(), ", "))
}

var commandHelp = [][2]string{
	{"add <description>", "Add a task"},
	{"list [status]", "List tasks, optionally by status"},
	{"update <id> <description>", "Change a task's description"},
	{"delete <id>", "Delete a task"},
	{"mark-todo <id>", "Mark a task as to-do"},
	{"mark-in-progress <id>", "Mark a task as in progress"},
	{"mark-done <id>", "Mark a task as done"},
	{"export <json|csv|pdf> [output]", "Export tasks (stdout when output is - or omitted)"},
	{"tui", "Launch the interactive task board"},
	{"doctor", "Check configuration and task file validity"},
	{"config [-example]", "Show effective configuration"},
	{"version", "Show version information"},
	{"help", "Show this help message"},
}

func statusTokens() []string {
	statuses := task.Statuses()
	tokens := make([]string, len(statuses))
	for i, s := range statuses {
		tokens[i] = s.Token()
	}
	return tokens
}
