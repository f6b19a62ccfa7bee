package command

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/core/service"
)

// HashPasswordCommand returns the hash-password command.
func HashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print an Argon2id hash for auth.password_hash",
		ArgsUsage: "[password]",
		Description: `Hashes the password given as argument, or the first line of
standard input when no argument is given.`,
		Action: hashPasswordAction,
	}
}

func hashPasswordAction(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && line == "" {
			return cli.Exit("password required", 1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return cli.Exit("password required", 1)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}
