package command

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/cli/repl"
)

// interactiveAction runs the REPL until exit, end of input or SIGTERM.
func interactiveAction(c *cli.Context) error {
	if c.Args().Present() {
		return cli.Exit("unknown command: "+c.Args().First(), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}

	rt, err := NewRuntime(cfg, log)
	if err != nil {
		return err
	}
	if err := rt.StartDiagnostics(); err != nil {
		rt.Close()
		return err
	}
	flags := ParseGlobalFlags(c)
	if flags.WatchConfig {
		if err := rt.WatchConfig(flags.ConfigFile, overrides(c)); err != nil {
			rt.Close()
			return err
		}
	}

	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	rt.Shutdown.OnShutdown(func(context.Context) error {
		cancel()
		return nil
	})
	go rt.Shutdown.Wait()

	// Ctrl+C cancels the running command only; at the prompt it is ignored.
	stopIgnoring := ignoreInterrupts()
	defer stopIgnoring()

	history := repl.NewHistory(cfg.CLI.HistoryFile)
	if err := history.Load(); err != nil {
		log.Warn("failed to load history", "file", cfg.CLI.HistoryFile, "error", err)
	}

	format, err := output.ParseFormat(cfg.CLI.Output)
	if err != nil {
		format = output.FormatTable
	}
	r := repl.New(rt.Controller,
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithFormat(format),
		repl.WithHistory(history),
		repl.WithSpinner(cfg.CLI.Spinner),
		repl.WithLogger(log),
		repl.WithCommandContext(interruptible),
	)
	runErr := r.Run(ctx)

	if err := history.Save(); err != nil {
		log.Warn("failed to save history", "file", cfg.CLI.HistoryFile, "error", err)
	}
	if err := rt.Close(); err != nil {
		log.Warn("shutdown finished with errors", "error", err)
	}
	return runErr
}

// interruptible derives a command context cancelled by Ctrl+C.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// ignoreInterrupts keeps SIGINT from terminating the process while the
// REPL waits for input.
func ignoreInterrupts() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
