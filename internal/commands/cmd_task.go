package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/codec"
	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/store/jsonfile"
)

type TaskCmd struct {
	flags *Flags
}

// NewTaskCmd creates a new task command
func NewTaskCmd(flags *Flags) *TaskCmd {
	return &TaskCmd{flags: flags}
}

// Register adds the task command with its status subcommands
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "task",
		Usage:     "Change the status of a task by id",
		UsageText: "taskboard task <done|cancel|reopen> <id>",
		Commands: []*cli.Command{
			{
				Name:      "done",
				Usage:     "Mark a task as done",
				UsageText: "taskboard task done <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.transition(ctx, c, task.StatusDone)
				},
			},
			{
				Name:      "cancel",
				Usage:     "Mark a task as cancelled",
				UsageText: "taskboard task cancel <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.transition(ctx, c, task.StatusCancelled)
				},
			},
			{
				Name:      "reopen",
				Usage:     "Mark a task as todo again",
				UsageText: "taskboard task reopen <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.transition(ctx, c, task.StatusTodo)
				},
			},
		},
	})

	return app
}

func (cmd *TaskCmd) transition(ctx context.Context, c *cli.Command, typ task.StatusType) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one task id argument")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id < 1 {
		return fmt.Errorf("invalid task id %q", c.Args().First())
	}

	store := jsonfile.NewSnapshotStore(cmd.flags.SnapshotPath())
	col, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	rec, found := findTask(col, id)
	if !found {
		return fmt.Errorf("task %d not found; run 'taskboard scan' first", id)
	}

	cfg := cmd.flags.Config
	symbol, ok := symbolFor(cfg.Alphabet(), typ)
	if !ok {
		return fmt.Errorf("no status symbol configured for %q", typ)
	}

	cdc := newCodec(cfg)
	now := func() string { return datetime.DateStamp(time.Now()) }
	updated := codec.ApplyStatusTransition(rec, symbol, typ, now)

	vault := cmd.flags.VaultDir
	if vault == "" {
		vault = cfg.VaultDir
	}
	docPath := filepath.Join(vault, filepath.FromSlash(updated.FilePath))
	if err := rewriteTaskLine(docPath, cdc, updated); err != nil {
		return err
	}

	repartition(&col, updated, typ)

	if err := store.SaveCollection(ctx, col); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Printf("task %d marked %s\n", id, typ)
	return nil
}

func findTask(col task.Collection, id int) (task.Task, bool) {
	for _, lists := range [][]task.Task{col.Pending, col.Completed} {
		for _, t := range lists {
			if t.ID == id {
				return t, true
			}
		}
	}
	return task.Task{}, false
}

// symbolFor picks a deterministic symbol for a status type, preferring
// the conventional defaults when present.
func symbolFor(alphabet task.Alphabet, typ task.StatusType) (string, bool) {
	preferred := map[task.StatusType]string{
		task.StatusTodo:       " ",
		task.StatusInProgress: "/",
		task.StatusDone:       "x",
		task.StatusCancelled:  "-",
	}
	if symbol, ok := preferred[typ]; ok {
		if got, exists := alphabet.Type(symbol); exists && got == typ {
			return symbol, true
		}
	}
	for symbol, t := range alphabet {
		if t == typ {
			return symbol, true
		}
	}
	return "", false
}

// repartition moves rec between the pending and completed lists to match
// its new status type.
func repartition(col *task.Collection, rec task.Task, typ task.StatusType) {
	remove := func(list []task.Task) []task.Task {
		for i := range list {
			if list[i].ID == rec.ID {
				return append(list[:i], list[i+1:]...)
			}
		}
		return list
	}

	col.Pending = remove(col.Pending)
	col.Completed = remove(col.Completed)

	if typ == task.StatusDone {
		col.Completed = append(col.Completed, rec)
		return
	}
	col.Pending = append(col.Pending, rec)
}
