package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/codec"
	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/scanner"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/store/jsonfile"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type ScanCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	assignIDs  bool
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags) *ScanCmd {
	return &ScanCmd{flags: flags}
}

// Register adds the scan command to the application
func (cmd *ScanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scan",
		Usage:     "Scan the vault for tasks and refresh the snapshot",
		UsageText: "taskboard scan [--assign-ids] [--json]",
		Description: `Walks the vault directory, parses every markdown document for checkbox
tasks, and writes the result to the snapshot file the board commands read.

With --assign-ids, tasks without an id are given the next free one and the
id is written back into the document.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the scan summary as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "assign-ids",
				Usage:       "write ids back into documents for tasks missing one",
				Destination: &cmd.assignIDs,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ScanCmd) run(ctx context.Context, c *cli.Command) error {
	log := logging.Component("scan")

	vault := cmd.flags.VaultDir
	if vault == "" {
		vault = cmd.flags.Config.VaultDir
	}
	if vault == "" {
		return fmt.Errorf("no vault directory configured; set vault_dir or pass --vault")
	}

	cdc := newCodec(cmd.flags.Config)
	sc := scanner.New(cdc, cmd.flags.Config.ScanFilters)

	var col task.Collection
	files := 0

	err := filepath.WalkDir(vault, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(vault, path)
		if err != nil {
			rel = path
		}

		part := sc.ScanDocument(filepath.ToSlash(rel), string(data))
		col.Pending = append(col.Pending, part.Pending...)
		col.Completed = append(col.Completed, part.Completed...)
		files++
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan vault: %w", err)
	}

	store := jsonfile.NewSnapshotStore(cmd.flags.SnapshotPath())

	if cmd.assignIDs {
		assigned, err := cmd.assignMissingIDs(ctx, vault, cdc, store, &col)
		if err != nil {
			return err
		}
		if assigned > 0 {
			log.Info().Int("count", assigned).Msg("assigned task ids")
		}
	}

	if err := store.SaveCollection(ctx, col); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(struct {
			Files     int `json:"files"`
			Pending   int `json:"pending"`
			Completed int `json:"completed"`
		}{files, len(col.Pending), len(col.Completed)})
	}

	fmt.Printf("scanned %d files: %d pending, %d completed\n",
		files, len(col.Pending), len(col.Completed))
	return nil
}

// assignMissingIDs allocates ids for tasks that have none and writes the
// id field back into the owning document.
func (cmd *ScanCmd) assignMissingIDs(ctx context.Context, vault string, cdc *codec.Codec, store *jsonfile.SnapshotStore, col *task.Collection) (int, error) {
	assigned := 0

	for _, lists := range []*[]task.Task{&col.Pending, &col.Completed} {
		for i := range *lists {
			rec := &(*lists)[i]
			if rec.ID != 0 {
				continue
			}

			id, err := store.AllocateID(ctx)
			if err != nil {
				return assigned, fmt.Errorf("allocate id: %w", err)
			}
			rec.ID = id

			if err := rewriteTaskLine(filepath.Join(vault, filepath.FromSlash(rec.FilePath)), cdc, *rec); err != nil {
				return assigned, err
			}
			assigned++
		}
	}

	return assigned, nil
}

// rewriteTaskLine serializes rec over its original line in the document.
func rewriteTaskLine(path string, cdc *codec.Codec, rec task.Task) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	idx := rec.TaskLocation.StartLine - 1
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("task line %d out of range in %s", rec.TaskLocation.StartLine, path)
	}

	updated, err := cdc.SerializeTask(lines[idx], rec)
	if err != nil {
		return fmt.Errorf("serialize task %d: %w", rec.ID, err)
	}
	if updated == lines[idx] {
		return nil
	}

	lines[idx] = updated
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}
