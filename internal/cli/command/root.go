package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/cli/config"
	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/infra/buildinfo"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "loginchallenge",
		Usage:   "Log in to a simulated backend and browse your profile",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Action:  interactiveAction,
		Commands: []*cli.Command{
			LoginCommand(),
			ConfigCommand(),
			HashPasswordCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"LOGINCHALLENGE_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:  "no-failures",
			Usage: "Disable simulated timeouts, rate limits and system errors",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for simulated failures (0 picks a random seed)",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve /metrics, /healthz and /status on this address",
		},
		&cli.BoolFlag{
			Name:  "watch-config",
			Usage: "Reload the log level when the configuration file changes",
		},
		&cli.BoolFlag{
			Name:  "no-spinner",
			Usage: "Disable the activity indicator",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigFile  string
	Output      string
	WatchConfig bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile:  c.String("config"),
		Output:      c.String("output"),
		WatchConfig: c.Bool("watch-config"),
	}
}

// overrides maps explicitly set flags onto configuration keys.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		m["log.format"] = c.String("log-format")
	}
	if c.IsSet("output") {
		m["cli.output"] = c.String("output")
	}
	if c.IsSet("no-failures") {
		m["simulation.failures"] = !c.Bool("no-failures")
	}
	if c.IsSet("seed") {
		m["simulation.seed"] = c.Uint64("seed")
	}
	if c.IsSet("metrics-addr") {
		m["diagnostics.addr"] = c.String("metrics-addr")
	}
	if c.IsSet("no-spinner") {
		m["cli.spinner"] = !c.Bool("no-spinner")
	}
	return m
}

// loadConfig loads and verifies the configuration for c.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger creates the application logger writing to w and makes it the
// default.
func initLogger(cfg *config.Config, w io.Writer) (logger.Logger, error) {
	lc := config.ToLoggerConfig(cfg)
	lc.Output = w

	log, err := logger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// formatterFor returns the formatter selected by cli.output.
func formatterFor(cfg *config.Config) output.Formatter {
	format, err := output.ParseFormat(cfg.CLI.Output)
	if err != nil {
		format = output.FormatTable
	}
	return output.NewFormatter(format)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
