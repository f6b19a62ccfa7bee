package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the merged configuration with secrets masked",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "defaults",
						Usage: "Show built-in defaults instead of the merged configuration",
					},
				},
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the merged configuration",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	var cfg *config.Config
	if c.Bool("defaults") {
		cfg = config.Default()
		if c.IsSet("output") {
			cfg.CLI.Output = c.String("output")
		}
	} else {
		loaded, err := config.Load(c.String("config"), overrides(c))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	return formatterFor(cfg).Format(c.App.Writer, config.Sanitize(cfg))
}

func configValidate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	source := "built-in defaults"
	if path := c.String("config"); path != "" {
		source = path
	}
	fmt.Fprintf(c.App.Writer, "✓ Configuration is valid (%s)\n", source)
	if cfg.Simulation.Failures {
		fmt.Fprintln(c.App.Writer, "  Simulated failures are enabled.")
	}
	return nil
}
