package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/filter"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/store/jsonfile"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type QueryCmd struct {
	flags *Flags
	fr    *iojson.FileReader[filter.Expression]

	// flags
	completed bool
}

func NewQueryCmd(flags *Flags) *QueryCmd {
	return &QueryCmd{
		flags: flags,
		fr:    &iojson.FileReader[filter.Expression]{},
	}
}

// Register adds the query command to the application
func (cmd *QueryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "query",
		Usage: "Filter snapshot tasks with a JSON expression",
		UsageText: `taskboard query [options]

Read from stdin:
  echo '{"combinator":"all","groups":[{"combinator":"any","predicates":[{"property":"tags","comparator":"hasTag","value":"work"}]}]}' | taskboard query

Read from file:
  taskboard query -f filter.json`,
		Description: `Evaluates a filter expression against the scanned snapshot and writes
the matching tasks as JSON.

The expression is a two-level tree. Groups are joined by the top-level
combinator, predicates within a group by the group's combinator. Valid
combinators are all, any, and none.

Input JSON schema:
  {
    "combinator": "all",
    "groups": [
      {
        "combinator": "any",
        "predicates": [
          {"property": "tags", "comparator": "hasTag", "value": "work"},
          {"property": "due", "comparator": "dateBefore", "value": "2024-06-01"}
        ]
      }
    ]
  }

An expression with no groups matches every task.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "query completed tasks instead of pending",
				Destination: &cmd.completed,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *QueryCmd) run(ctx context.Context, c *cli.Command) error {
	expr, err := cmd.fr.Read()
	if err != nil {
		return iojson.WriteError(fmt.Sprintf("read expression: %s", err), nil)
	}

	store := jsonfile.NewSnapshotStore(cmd.flags.SnapshotPath())
	col, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	tasks := col.Pending
	if cmd.completed {
		tasks = col.Completed
	}

	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.EvaluateExpression(t, expr) {
			matched = append(matched, t)
		}
	}

	return iojson.Write(matched)
}
