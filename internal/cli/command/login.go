package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/cli/repl"
	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

// Exit codes of the one-shot login command, one per error kind.
const (
	ExitLoginRejected   = 2
	ExitUnauthenticated = 3
	ExitNetwork         = 4
	ExitServerInternal  = 5
	ExitSystemFault     = 6
)

// LoginCommand returns the one-shot login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Log in, print the profile and log out",
		ArgsUsage: "<id> <password>",
		Description: `Runs one full session without the interactive prompt:
login, profile fetch, logout. On failure the alert is printed and the
exit status identifies the error kind (2 rejected, 3 unauthenticated,
4 network, 5 server, 6 system).`,
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: loginchallenge login <id> <password>", 1)
	}
	id, password := c.Args().Get(0), c.Args().Get(1)

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
	defer rt.Close()

	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	ctrl := rt.Controller
	if err := ctrl.Login(ctx, id, password); err != nil {
		return exitError(err)
	}
	user, err := ctrl.LoadCurrentUser(ctx)
	if err != nil {
		ctrl.Logout(ctx)
		return exitError(err)
	}

	if err := formatterFor(cfg).Format(c.App.Writer, user); err != nil {
		ctrl.Logout(ctx)
		return fmt.Errorf("print profile: %w", err)
	}
	return ctrl.Logout(ctx)
}

// exitError turns an operation failure into its alert and exit code.
func exitError(err error) error {
	alert := repl.AlertFor(err)
	return cli.Exit(alert.String(), exitCode(err))
}

func exitCode(err error) int {
	if errors.Is(err, domain.ErrOperationInProgress) {
		return 1
	}
	switch domain.Classify(err) {
	case domain.KindLoginRejected:
		return ExitLoginRejected
	case domain.KindUnauthenticated:
		return ExitUnauthenticated
	case domain.KindNetwork:
		return ExitNetwork
	case domain.KindServerInternal:
		return ExitServerInternal
	default:
		return ExitSystemFault
	}
}
