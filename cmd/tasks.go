package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/tasktracker/internal/export"
	"github.com/nibzard/tasktracker/internal/task"
	"github.com/nibzard/tasktracker/internal/ui"
)

// commandError carries a user-facing message while keeping the cause for errors.Is.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// storeError turns store sentinels into the messages the CLI prints.
func storeError(err error, id int) error {
	if errors.Is(err, task.ErrNotFound) {
		return &commandError{msg: fmt.Sprintf("task with ID %d not found", id), err: err}
	}
	return err
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &commandError{msg: fmt.Sprintf("invalid task ID %q", s), err: task.ErrInvalidArgument}
	}
	return id, nil
}

func (c *cli) addCommand(args []string) error {
	if err := c.checkArgs("add", args, 1, 1, "add <description>"); err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	id, err := store.Add(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Task added successfully (ID: %d)\n", id)
	return nil
}

func (c *cli) listCommand(args []string) error {
	if err := c.checkArgs("list", args, 0, 1, "list [status]"); err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}

	var tasks []task.Task
	if len(args) == 1 {
		status, err := task.ParseStatus(args[0])
		if err != nil {
			return err
		}
		tasks, err = store.GetByStatus(status)
		if err != nil {
			return err
		}
	} else {
		tasks, err = store.GetAll()
		if err != nil {
			return err
		}
	}

	printTable(c.stdout, tasks)
	return nil
}

func (c *cli) updateCommand(args []string) error {
	if err := c.checkArgs("update", args, 2, 2, "update <id> <description>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	return storeError(store.Update(id, args[1]), id)
}

func (c *cli) deleteCommand(args []string) error {
	if err := c.checkArgs("delete", args, 1, 1, "delete <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	return store.Delete(id)
}

func (c *cli) markCommand(name string, args []string, status task.Status) error {
	if err := c.checkArgs(name, args, 1, 1, name+" <id>"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	return storeError(store.UpdateStatus(id, status), id)
}

func (c *cli) exportCommand(args []string) error {
	if err := c.checkArgs("export", args, 1, 2, "export <json|csv|pdf> [output]"); err != nil {
		return err
	}
	format, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}
	output := "-"
	if len(args) == 2 {
		output = args[1]
	}
	if output == "-" && format == export.FormatPDF {
		return fmt.Errorf("pdf export needs an output file")
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	tasks, err := store.GetAll()
	if err != nil {
		return err
	}

	if output == "-" {
		return export.Export(c.stdout, tasks, format)
	}
	if err := exportToFile(output, tasks, format); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Exported %d tasks to %s\n", len(tasks), output)
	return nil
}

func exportToFile(path string, tasks []task.Task, format export.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()
	return export.Export(f, tasks, format)
}

func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	if err := c.checkArgs("tui", args, 0, 0, "tui"); err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	if err := store.EnsureInitialized(); err != nil {
		return err
	}
	return ui.Run(ctx, store, ui.WithRefreshInterval(c.cfg.TUIRefresh))
}

var tableRule = strings.Repeat("-", 44)

// printTable prints tasks in the fixed-width table layout:
// |Id |Description              |Status      |
func printTable(w io.Writer, tasks []task.Task) {
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "|%-3s|%-25s|%-12s|\n", "Id", "Description", "Status")
	fmt.Fprintln(w, tableRule)
	for _, t := range tasks {
		fmt.Fprintf(w, "|%-3d|%-25s|%-12s|\n", t.ID, t.Description, t.Status.Token())
	}
	fmt.Fprintln(w, tableRule)
}
