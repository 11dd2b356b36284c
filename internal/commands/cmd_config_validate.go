package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskboard config validate [options]",
				Description: "Validates the configuration file, checking board definitions, status alphabet, and directory paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	if cmd.format == "json" {
		out := struct {
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors,omitempty"`
		}{Valid: err == nil, Errors: fieldErrorStrings(err)}

		if werr := iojson.Write(out); werr != nil {
			return werr
		}
		if err != nil {
			return cli.Exit("", 1)
		}
		return nil
	}

	if err != nil {
		fmt.Println("configuration is invalid:")
		for _, msg := range fieldErrorStrings(err) {
			fmt.Printf("  - %s\n", msg)
		}
		return cli.Exit("", 1)
	}

	fmt.Println("configuration is valid")
	return nil
}

// fieldErrorStrings flattens criterio field errors into printable lines.
func fieldErrorStrings(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		out := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, fmt.Sprintf("%s: %s", fe.Field, fe.Err))
		}
		return out
	}

	return []string{err.Error()}
}
