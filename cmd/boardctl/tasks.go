package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/dispatch"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/shell"
	"github.com/spf13/cobra"
)

// boardView is an opened board: the shell holding its projection and the
// dispatcher delivering the shell's updates.
type boardView struct {
	shell      *shell.Shell
	dispatcher *dispatch.Dispatcher
	failed     atomic.Int64
}

func (a *app) openBoard(cmd *cobra.Command, ref string) (*boardView, error) {
	c, err := a.newClient(true)
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.callContext(cmd)
	defer cancel()

	boardID, err := resolveBoard(ctx, c, ref)
	if err != nil {
		return nil, err
	}

	v := &boardView{}
	v.dispatcher = dispatch.New(c, dispatch.Config{
		WorkerCount: a.cfg.WorkerCount,
		QueueSize:   a.cfg.QueueSize,
		CallTimeout: a.callTimeout(),
	}, a.logger)
	v.dispatcher.SetResultHandler(func(r dispatch.Result) {
		if !r.OK() {
			v.failed.Add(1)
		}
	})
	v.dispatcher.Start()
	v.shell = shell.New(c, v.dispatcher, a.logger)

	if err := v.shell.Open(ctx, boardID); err != nil {
		v.dispatcher.Stop()
		return nil, err
	}
	return v, nil
}

// close waits for every dispatched update and reports failed ones.
func (v *boardView) close() error {
	v.dispatcher.Stop()
	if n := v.failed.Load(); n > 0 {
		return fmt.Errorf("%d update(s) could not be saved; run show to see the stored board", n)
	}
	return nil
}

func render(out io.Writer, p board.Projection) {
	for i, col := range domain.Columns() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		tasks := p.ColumnTasks(col)
		fmt.Fprintf(out, "%s (%d)\n", col.Title(), len(tasks))
		for idx, t := range tasks {
			fmt.Fprintf(out, "  %d  %s  %s\n", idx, shortID(t.ID), t.Content)
		}
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Show the columns of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openBoard(cmd, args[0])
			if err != nil {
				return err
			}
			render(cmd.OutOrStdout(), v.shell.Projection())
			return v.close()
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <board> <content...>",
		Short: "Add a task to the end of the To Do column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openBoard(cmd, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			out := cmd.OutOrStdout()
			task, err := v.shell.Add(ctx, strings.Join(args[1:], " "))
			if err != nil {
				_ = v.close()
				return err
			}
			if task == nil {
				fmt.Fprintln(out, "Nothing to add.")
			} else {
				fmt.Fprintf(out, "Added %s.\n\n", shortID(task.ID))
				render(out, v.shell.Projection())
			}
			return v.close()
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <board> <task> <column> <index>",
		Short: "Move a task to a position in a column",
		Long: `Move a task to index (0 is the top) of column todo, in_progress or done.
Indexes past the end of the column place the task last.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := domain.ParseColumn(args[2])
			if err != nil {
				return fmt.Errorf("unknown column %q: use todo, in_progress or done", args[2])
			}
			idx, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[3])
			}

			v, err := a.openBoard(cmd, args[0])
			if err != nil {
				return err
			}
			taskID, err := resolveTask(v.shell.Projection(), args[1])
			if err != nil {
				_ = v.close()
				return err
			}

			out := cmd.OutOrStdout()
			if v.shell.MoveTo(taskID, col, idx) {
				render(out, v.shell.Projection())
			} else {
				fmt.Fprintln(out, "No changes.")
			}
			return v.close()
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <board> <task> <content...>",
		Short: "Replace the content of a task",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openBoard(cmd, args[0])
			if err != nil {
				return err
			}
			taskID, err := resolveTask(v.shell.Projection(), args[1])
			if err != nil {
				_ = v.close()
				return err
			}

			out := cmd.OutOrStdout()
			if v.shell.Edit(taskID, strings.Join(args[2:], " ")) {
				render(out, v.shell.Projection())
			} else {
				fmt.Fprintln(out, "No changes.")
			}
			return v.close()
		},
	}
}
