package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			format, err := output.ParseFormat(c.String("output"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return output.NewFormatter(format).Format(c.App.Writer, buildinfo.Get())
		},
	}
}
