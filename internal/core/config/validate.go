package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskboard/internal/core/board"
	"github.com/colonyops/taskboard/internal/core/notation"
	"github.com/colonyops/taskboard/internal/core/scanner"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
)

var statusTypes = map[task.StatusType]bool{
	task.StatusTodo:       true,
	task.StatusInProgress: true,
	task.StatusDone:       true,
	task.StatusCancelled:  true,
}

var sortFields = map[string]bool{
	board.SortByPriority:    true,
	board.SortByDue:         true,
	board.SortByStart:       true,
	board.SortByScheduled:   true,
	board.SortByCreated:     true,
	board.SortByCompletion:  true,
	board.SortByTitle:       true,
	board.SortByID:          true,
	board.SortByManualOrder: true,
}

var columnKinds = map[board.ColumnKind]bool{
	board.KindUndated:      true,
	board.KindDated:        true,
	board.KindNamedTag:     true,
	board.KindUntagged:     true,
	board.KindOtherTags:    true,
	board.KindTaskStatus:   true,
	board.KindTaskPriority: true,
	board.KindPathFiltered: true,
	board.KindCompleted:    true,
	board.KindAllPending:   true,
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("default_notation", c.DefaultNotation, notationExists),
		criterio.Run("theme", c.Theme, themeExists),
		c.validateAlphabet(),
		c.validateHiddenFields(),
		c.validateScanFilters(),
		c.validateBoards(),
	)
}

// ValidateDeep adds I/O checks on top of Validate: config file and vault
// directory accessibility.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("vault_dir", c.VaultDir, isDirectoryOrNotExist),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func notationExists(s string) error {
	if s == "" {
		return nil
	}
	_, err := notation.Parse(s)
	return err
}

func themeExists(s string) error {
	if s == "" {
		return nil
	}
	if _, ok := styles.GetPalette(s); !ok {
		return fmt.Errorf("unknown theme %q, available: %s", s, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func (c *Config) validateAlphabet() error {
	var errs criterio.FieldErrorsBuilder
	for symbol, typ := range c.StatusAlphabet {
		if len([]rune(symbol)) != 1 {
			errs = errs.Append(fmt.Sprintf("status_alphabet[%q]", symbol),
				fmt.Errorf("symbol must be a single character"))
		}
		if !statusTypes[task.StatusType(typ)] {
			errs = errs.Append(fmt.Sprintf("status_alphabet[%q]", symbol),
				fmt.Errorf("unknown status type %q", typ))
		}
	}
	return errs.ToError()
}

func (c *Config) validateHiddenFields() error {
	known := make(map[string]bool, len(notation.SingleValueFields)+1)
	for _, kind := range notation.SingleValueFields {
		known[kind.String()] = true
	}
	known[notation.FieldTag.String()] = true

	var errs criterio.FieldErrorsBuilder
	for i, name := range c.HiddenFields {
		if !known[name] {
			errs = errs.Append(fmt.Sprintf("hidden_fields[%d]", i),
				fmt.Errorf("unknown field %q", name))
		}
	}
	return errs.ToError()
}

func (c *Config) validateScanFilters() error {
	var errs criterio.FieldErrorsBuilder
	for name, rule := range map[string]scanner.Rule{
		"scan_filters.files":       c.ScanFilters.Files,
		"scan_filters.folders":     c.ScanFilters.Folders,
		"scan_filters.tags":        c.ScanFilters.Tags,
		"scan_filters.frontmatter": c.ScanFilters.Frontmatter,
	} {
		switch rule.Polarity {
		case "", scanner.PolarityOff, scanner.PolarityInclude, scanner.PolarityExclude:
		default:
			errs = errs.Append(name, fmt.Errorf("unknown polarity %q", rule.Polarity))
		}
	}
	return errs.ToError()
}

func (c *Config) validateBoards() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Boards))

	for i, b := range c.Boards {
		field := fmt.Sprintf("boards[%d]", i)
		if b.Name == "" {
			errs = errs.Append(field+".name", fmt.Errorf("board name cannot be empty"))
		}
		if seen[b.Name] {
			errs = errs.Append(field+".name", fmt.Errorf("duplicate board name %q", b.Name))
		}
		seen[b.Name] = true

		for j, col := range b.Columns {
			cfield := fmt.Sprintf("%s.columns[%d]", field, j)
			if !columnKinds[col.Kind] {
				errs = errs.Append(cfield+".kind", fmt.Errorf("unknown column kind %q", col.Kind))
			}
			if col.Kind == board.KindDated && col.Range == nil {
				errs = errs.Append(cfield+".range", fmt.Errorf("dated column requires a day range"))
			}
			if col.Kind == board.KindNamedTag && col.TagPattern == "" {
				errs = errs.Append(cfield+".tagPattern", fmt.Errorf("namedTag column requires a tag pattern"))
			}
			if col.Priority < 0 || col.Priority > 5 {
				errs = errs.Append(cfield+".priority", fmt.Errorf("priority must be 0-5"))
			}
			for k, crit := range col.SortCriteria {
				if !sortFields[crit.Field] {
					errs = errs.Append(fmt.Sprintf("%s.sort[%d].field", cfield, k),
						fmt.Errorf("unknown sort field %q", crit.Field))
				}
				switch crit.Direction {
				case "", "asc", "desc":
				default:
					errs = errs.Append(fmt.Sprintf("%s.sort[%d].direction", cfield, k),
						fmt.Errorf("direction must be asc or desc"))
				}
			}
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't
// exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
