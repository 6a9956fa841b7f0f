package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/tasktracker/internal/config"
	"github.com/nibzard/tasktracker/internal/task"
)

// doctorCommand reports where the configuration came from and whether the
// task file passes schema and invariant checks.
func (c *cli) doctorCommand(args []string) error {
	if err := c.checkArgs("doctor", args, 0, 0, "doctor"); err != nil {
		return err
	}
	w := c.stdout

	fmt.Fprintln(w, "Task Tracker Doctor")
	fmt.Fprintln(w, "===================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	if len(c.cws.Files) == 0 {
		fmt.Fprintln(w, "  (no config files, using defaults)")
	}
	for _, f := range c.cws.Files {
		fmt.Fprintf(w, "  file: %s\n", f)
	}
	for _, warning := range c.cws.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s\n", c.cfg.TaskFile)
	info, err := os.Stat(c.cfg.TaskFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ✅ Not created yet (created on first use)")
		return nil
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return fmt.Errorf("task file check failed: %w", err)
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return fmt.Errorf("task file check failed: %s is a directory", c.cfg.TaskFile)
	}

	schemaLabel := "built-in"
	if c.cfg.SchemaFile != "" {
		schemaLabel = c.cfg.SchemaFile
	}
	fmt.Fprintf(w, "  Schema: %s\n", schemaLabel)

	result, err := task.ValidateFile(c.cfg.TaskFile, task.ValidationOptions{SchemaPath: c.cfg.SchemaFile})
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return fmt.Errorf("task file check failed: %w", err)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		for _, verr := range result.Errors {
			fmt.Fprintf(w, "  ❌ %v\n", verr)
		}
		return fmt.Errorf("task file has %d problem(s)", len(result.Errors))
	}
	fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", result.Tasks)
	return nil
}

// configCommand prints the effective configuration with the source of
// each value, or an example config file with -example.
func (c *cli) configCommand(args []string) error {
	flags := flag.NewFlagSet("tasktracker config", flag.ContinueOnError)
	flags.SetOutput(c.stderr)
	example := flags.Bool("example", false, "Print an example config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", errUsage, flags.Args())
	}

	if *example {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}

	for _, field := range config.Fields() {
		fmt.Fprintf(c.stdout, "%-15s = %-40q # %s\n", field, c.cfg.Value(field), c.cws.Sources[field])
	}
	return nil
}
