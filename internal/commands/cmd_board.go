package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/board"
	"github.com/colonyops/taskboard/internal/core/codec"
	"github.com/colonyops/taskboard/internal/core/datetime"
	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/notation"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/store/jsonfile"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type BoardCmd struct {
	flags *Flags

	// flags
	boardName  string
	jsonOutput bool
}

// NewBoardCmd creates a new board command
func NewBoardCmd(flags *Flags) *BoardCmd {
	return &BoardCmd{flags: flags}
}

// Register adds the board command to the application
func (cmd *BoardCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "board",
		Usage:     "Render a board from the current snapshot",
		UsageText: "taskboard board [--name <board>] [--json]",
		Description: `Classifies the snapshot's tasks into the named board's columns and
renders them. Healed manual orders are persisted back to the snapshot.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "board name (defaults to the first configured board)",
				Destination: &cmd.boardName,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output columns as JSON instead of rendering",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BoardCmd) run(ctx context.Context, c *cli.Command) error {
	log := logging.Component("board")

	b, ok := cmd.flags.Config.FindBoard(cmd.boardName)
	if !ok {
		return fmt.Errorf("board %q not found in configuration", cmd.boardName)
	}
	ctx = logging.WithBoard(ctx, b.Name)

	store := jsonfile.NewSnapshotStore(cmd.flags.SnapshotPath())
	col, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	bctx := board.Context{Today: time.Now(), Columns: b.Columns}

	type column struct {
		Name  string      `json:"name"`
		Tasks []task.Task `json:"tasks"`
	}
	columns := make([]column, 0, len(b.Columns))

	for _, spec := range b.Columns {
		key := b.Name + "/" + spec.Name
		if stored, err := store.ManualOrder(ctx, key); err == nil && len(stored) > 0 {
			spec.ManualOrderIDs = stored
		}

		res := board.Classify(col, spec, bctx)

		if res.ManualOrderChanged {
			if err := store.SetManualOrder(ctx, key, res.ManualOrder); err != nil {
				log.Warn().Ctx(ctx).Err(err).Str("column", spec.Name).
					Msg("failed to persist healed manual order")
			}
		}

		columns = append(columns, column{Name: spec.Name, Tasks: res.Tasks})
	}

	if cmd.jsonOutput {
		return iojson.Write(columns)
	}

	if p, ok := styles.GetPalette(cmd.flags.Config.Theme); ok {
		styles.SetTheme(p)
	}

	cdc := newCodec(cmd.flags.Config)
	hidden := make(map[string]bool, len(cmd.flags.Config.HiddenFields))
	for _, name := range cmd.flags.Config.HiddenFields {
		hidden[name] = true
	}

	rendered := make([]string, 0, len(columns))
	for _, c := range columns {
		rendered = append(rendered, renderColumn(cdc, c.Name, c.Tasks, hidden))
	}

	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return nil
}

const columnWidth = 34

func renderColumn(cdc *codec.Codec, name string, tasks []task.Task, hidden map[string]bool) string {
	var b strings.Builder

	b.WriteString(styles.ColumnTitleStyle.Render(name))
	b.WriteString(styles.ColumnCountStyle.Render(fmt.Sprintf(" (%d)", len(tasks))))

	for _, t := range tasks {
		b.WriteString("\n")
		b.WriteString(renderTask(cdc, t, hidden))
	}

	return styles.ColumnStyle.Width(columnWidth).Render(b.String())
}

func renderTask(cdc *codec.Codec, t task.Task, hidden map[string]bool) string {
	title := styles.TaskTitleStyle.Render(t.Title)
	if typ, ok := cdc.StatusType(t); ok && typ == task.StatusDone {
		title = styles.DoneStyle.Render(t.Title)
	}

	var meta []string
	if t.Priority > 0 && !hidden[notation.FieldPriority.String()] {
		glyph := notation.PriorityGlyphs[t.Priority]
		meta = append(meta, styles.PriorityStyles[t.Priority].Render(glyph))
	}
	if t.Due != "" && !hidden[notation.FieldDueDate.String()] {
		style := styles.TaskMetaStyle
		if d, ok := datetime.ParseDate(t.Due); ok && datetime.DaysBetween(time.Now(), d) < 0 {
			style = styles.OverdueStyle
		}
		meta = append(meta, style.Render("due "+t.Due))
	}
	if !hidden[notation.FieldTag.String()] {
		for _, tag := range t.Tags {
			meta = append(meta, styles.TagStyle.Render("#"+tag))
		}
	}

	line := title
	if len(meta) > 0 {
		line += "\n  " + strings.Join(meta, " ")
	}
	return line
}
