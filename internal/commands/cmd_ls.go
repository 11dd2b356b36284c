package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/store/jsonfile"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	completed  bool
	tag        string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks from the current snapshot",
		UsageText: "taskboard ls [--completed] [--tag <tag>] [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "list completed tasks instead of pending",
				Destination: &cmd.completed,
			},
			&cli.StringFlag{
				Name:        "tag",
				Usage:       "only list tasks carrying this tag",
				Destination: &cmd.tag,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	store := jsonfile.NewSnapshotStore(cmd.flags.SnapshotPath())
	col, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	tasks := col.Pending
	if cmd.completed {
		tasks = col.Completed
	}

	if cmd.tag != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.HasTag(cmd.tag) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if cmd.jsonOutput {
		return iojson.Write(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRI\tDUE\tTITLE\tTAGS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\t%s\n",
			formatID(t.ID), t.Status, formatPriority(t.Priority),
			t.Due, t.Title, strings.Join(t.AllTags(), ","))
	}
	return w.Flush()
}

func formatID(id int) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func formatPriority(p int) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", p)
}
