package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// Session is the controller surface the REPL drives. *service.Controller
// implements it.
type Session interface {
	Login(ctx context.Context, id, password string) error
	Logout(ctx context.Context) error
	LoadCurrentUser(ctx context.Context) (domain.User, error)
	User() (domain.User, bool)
	Status() service.Status
	Subscribe(ctx context.Context) <-chan service.Event
}

// Screen identifies which set of commands is available.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
)

func (s Screen) String() string {
	if s == ScreenHome {
		return "home"
	}
	return "login"
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	session   Session
	input     io.Reader
	output    io.Writer
	formatter output.Formatter
	format    output.Format
	completer *Completer
	history   *History
	spinner   bool
	log       logger.Logger

	// commandContext derives the context of a single command.
	commandContext func(context.Context) (context.Context, context.CancelFunc)

	mu     sync.Mutex
	screen Screen
	userID string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams (default: stdin, stdout).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormat sets the output format for profiles and status.
func WithFormat(f output.Format) Option {
	return func(r *REPL) {
		r.format = f
		r.formatter = output.NewFormatter(f)
	}
}

// WithHistory sets the command history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		if h != nil {
			r.history = h
		}
	}
}

// WithSpinner enables the activity indicator during backend calls.
func WithSpinner(enabled bool) Option {
	return func(r *REPL) {
		r.spinner = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCommandContext sets how each command's context is derived from the
// loop context, for example to cancel a command on SIGINT.
func WithCommandContext(fn func(context.Context) (context.Context, context.CancelFunc)) Option {
	return func(r *REPL) {
		if fn != nil {
			r.commandContext = fn
		}
	}
}

// New creates a new REPL instance.
func New(s Session, opts ...Option) *REPL {
	r := &REPL{
		session:        s,
		input:          os.Stdin,
		output:         os.Stdout,
		formatter:      output.NewFormatter(output.FormatTable),
		format:         output.FormatTable,
		completer:      NewCompleter(commandNames()...),
		history:        NewHistory(""),
		log:            logger.Default(),
		commandContext: context.WithCancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "repl")

	if st := s.Status(); st.Authenticated {
		r.screen = ScreenHome
		if st.User != nil {
			r.userID = st.User.ID
		}
	}
	return r
}

// Screen returns the current screen.
func (r *REPL) Screen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen
}

func (r *REPL) setScreen(s Screen, userID string) {
	r.mu.Lock()
	r.screen = s
	r.userID = userID
	r.mu.Unlock()
}

// Run reads commands until exit, end of input or ctx is done.
// Session events are handled between commands.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := r.session.Subscribe(ctx)
	lines := readLines(ctx, r.input)

	r.printf("Login Challenge. Type \"help\" for commands.\n")
	r.prompt()

	for {
		select {
		case <-ctx.Done():
			r.printf("\n")
			return nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			r.handleEvent(ev)

		case line, ok := <-lines:
			if !ok {
				r.printf("\n")
				return nil
			}
			if exit := r.Execute(ctx, line); exit {
				return nil
			}
			r.prompt()
		}
	}
}

// Execute runs a single input line and reports whether the REPL should exit.
func (r *REPL) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	r.history.Add(line)

	name, args := fields[0], fields[1:]
	cmd, ok := lookup(name)
	if !ok {
		r.printf("Unknown command %q.", name)
		if s := r.completer.Suggest(name); len(s) > 0 {
			r.printf(" Did you mean: %s?", strings.Join(s, ", "))
		}
		r.printf("\n")
		return false
	}

	if cmd.exit {
		return true
	}
	if screen := r.Screen(); !cmd.availableOn(screen) {
		r.printf("%s: %s\n", cmd.name, unavailableReason(screen))
		return false
	}

	cctx, cancel := r.commandContext(ctx)
	defer cancel()

	r.log.Debug("command", "name", cmd.name, "screen", r.Screen().String())
	if err := cmd.run(r, cctx, args); err != nil {
		r.printf("Error: %v\n", err)
	}
	return false
}

func (r *REPL) handleEvent(ev service.Event) {
	if ev.Type != service.EventLoggedOut {
		return
	}
	// A newer session may have started since the event was published.
	if r.Screen() == ScreenLogin || r.session.Status().Authenticated {
		return
	}

	r.setScreen(ScreenLogin, "")
	if ev.Reason == session.ReasonExpired {
		r.printf("\nSession expired. Please log in again.\n")
	} else {
		r.printf("\nLogged out.\n")
	}
	r.prompt()
}

func (r *REPL) prompt() {
	r.mu.Lock()
	screen, user := r.screen, r.userID
	r.mu.Unlock()

	if screen == ScreenHome && user != "" {
		r.printf("%s@home> ", user)
		return
	}
	r.printf("%s> ", screen)
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}

// withSpinner runs fn with the activity indicator when it is enabled.
func (r *REPL) withSpinner(message string, fn func() error) error {
	if !r.spinner {
		return fn()
	}
	s := output.NewSpinner(r.output, message)
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// readLines feeds lines from in until EOF or ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
