package repl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	screens []Screen // nil means every screen
	exit    bool
	run     func(r *REPL, ctx context.Context, args []string) error
}

func (c *command) availableOn(s Screen) bool {
	if c.screens == nil {
		return true
	}
	for _, screen := range c.screens {
		if screen == s {
			return true
		}
	}
	return false
}

var errUsage = errors.New("invalid arguments")

var commands []*command

func init() {
	commands = []*command{
		{name: "login", usage: "login <id> <password>", summary: "Log in", screens: []Screen{ScreenLogin}, run: (*REPL).cmdLogin},
		{name: "reload", usage: "reload", summary: "Fetch the profile again", screens: []Screen{ScreenHome}, run: (*REPL).cmdReload},
		{name: "show", usage: "show", summary: "Show the loaded profile", screens: []Screen{ScreenHome}, run: (*REPL).cmdShow},
		{name: "logout", usage: "logout", summary: "Log out", screens: []Screen{ScreenHome}, run: (*REPL).cmdLogout},
		{name: "status", usage: "status", summary: "Show session state", run: (*REPL).cmdStatus},
		{name: "history", usage: "history [n]", summary: "Show recent commands", run: (*REPL).cmdHistory},
		{name: "help", aliases: []string{"?"}, usage: "help", summary: "Show commands", run: (*REPL).cmdHelp},
		{name: "exit", aliases: []string{"quit"}, usage: "exit", summary: "Leave", exit: true},
	}
}

func lookup(name string) (*command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return nil, false
}

func commandNames() []string {
	var names []string
	for _, c := range commands {
		names = append(names, c.name)
		names = append(names, c.aliases...)
	}
	return names
}

func unavailableReason(s Screen) string {
	if s == ScreenLogin {
		return "not logged in"
	}
	return "already logged in"
}

func (r *REPL) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: login <id> <password>", errUsage)
	}
	id, password := args[0], args[1]

	err := r.withSpinner("Logging in...", func() error {
		return r.session.Login(ctx, id, password)
	})
	if err != nil {
		r.alert(err)
		return nil
	}

	r.setScreen(ScreenHome, id)
	r.printf("✓ Logged in as %s\n", id)
	return r.cmdReload(ctx, nil)
}

func (r *REPL) cmdReload(ctx context.Context, _ []string) error {
	var user domain.User
	err := r.withSpinner("Loading profile...", func() error {
		var err error
		user, err = r.session.LoadCurrentUser(ctx)
		return err
	})
	if err != nil {
		r.alert(err)
		if domain.Classify(err) == domain.KindUnauthenticated {
			r.setScreen(ScreenLogin, "")
		}
		return nil
	}
	return r.formatter.Format(r.output, user)
}

func (r *REPL) cmdShow(_ context.Context, _ []string) error {
	user, ok := r.session.User()
	if !ok {
		r.printf("No profile loaded. Run \"reload\".\n")
		return nil
	}
	return r.formatter.Format(r.output, user)
}

func (r *REPL) cmdLogout(ctx context.Context, _ []string) error {
	err := r.withSpinner("Logging out...", func() error {
		return r.session.Logout(ctx)
	})
	if err != nil {
		r.alert(err)
		return nil
	}

	r.setScreen(ScreenLogin, "")
	r.printf("Logged out.\n")
	return nil
}

func (r *REPL) cmdStatus(_ context.Context, _ []string) error {
	st := r.session.Status()
	if err := r.formatter.Format(r.output, st); err != nil {
		return err
	}

	if r.format != output.FormatTable || st.IssuedAt == nil || st.ExpiresAt == nil {
		return nil
	}
	total := st.ExpiresAt.Sub(*st.IssuedAt)
	remaining := time.Until(*st.ExpiresAt)
	return output.NewDurationBar("Session").Render(r.output, remaining.Milliseconds(), total.Milliseconds())
}

func (r *REPL) cmdHistory(_ context.Context, args []string) error {
	entries := r.history.Entries()
	n := len(entries)
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("%w: usage: history [n]", errUsage)
		}
		n = min(v, len(entries))
	}

	start := len(entries) - n
	for i, e := range entries[start:] {
		r.printf("%4d  %s\n", start+i+1, e)
	}
	return nil
}

func (r *REPL) cmdHelp(_ context.Context, _ []string) error {
	screen := r.Screen()
	table := &output.Table{}
	for _, c := range commands {
		if c.availableOn(screen) {
			table.AddRow(c.usage, c.summary)
		}
	}
	return table.RenderWithOptions(r.output, true)
}

func (r *REPL) alert(err error) {
	r.printf("%s\n", AlertFor(err))
}
