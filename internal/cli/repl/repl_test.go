package repl

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/login-challenge-go/internal/cli/output"
	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/core/session"
)

func TestREPL_LoginShowLogout(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	if r.Screen() != ScreenLogin {
		t.Fatalf("initial Screen() = %v, want login", r.Screen())
	}

	out := f.exec(t, r, "login koher 1234")
	if !strings.Contains(out, "✓ Logged in as koher") {
		t.Errorf("login output = %q", out)
	}
	// The profile is loaded right after login
	if !strings.Contains(out, "Yuta Koshizawa") {
		t.Errorf("login output = %q, want profile", out)
	}
	if r.Screen() != ScreenHome {
		t.Fatalf("Screen() = %v after login, want home", r.Screen())
	}

	out = f.exec(t, r, "show")
	if !strings.Contains(out, "koher") || !strings.Contains(out, "Yuta Koshizawa") {
		t.Errorf("show output = %q", out)
	}

	out = f.exec(t, r, "logout")
	if !strings.Contains(out, "Logged out.") {
		t.Errorf("logout output = %q", out)
	}
	if r.Screen() != ScreenLogin {
		t.Errorf("Screen() = %v after logout, want login", r.Screen())
	}
	if f.ctrl.Status().Authenticated {
		t.Error("session should be gone after logout")
	}
}

func TestREPL_LoginRejected(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "login wrong wrong")
	if !strings.Contains(out, "Login error: The ID or password is incorrect.") {
		t.Errorf("output = %q", out)
	}
	if r.Screen() != ScreenLogin {
		t.Errorf("Screen() = %v, want login", r.Screen())
	}

	// Retry is accepted at once
	out = f.exec(t, r, "login koher 1234")
	if !strings.Contains(out, "Logged in") {
		t.Errorf("retry output = %q", out)
	}
}

func TestREPL_LoginFailureAlerts(t *testing.T) {
	tests := []struct {
		name    string
		outcome service.Outcome
		want    string
	}{
		{"timeout", service.OutcomeTimeout, "Network error:"},
		{"rate limited", service.OutcomeRateLimited, "Server error:"},
		{"system", service.OutcomeSystemError, "System error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, service.NewFixedOutcomes(tt.outcome), nil)
			r := f.repl()

			out := f.exec(t, r, "login koher 1234")
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
			if r.Screen() != ScreenLogin {
				t.Errorf("Screen() = %v, want login", r.Screen())
			}
		})
	}
}

func TestREPL_ReloadFailureStaysHome(t *testing.T) {
	// First profile load (after login) succeeds, the reload times out
	f := newFixture(t, nil, service.NewFixedOutcomes(service.OutcomeSuccess, service.OutcomeTimeout))
	r := f.repl()

	f.exec(t, r, "login koher 1234")
	out := f.exec(t, r, "reload")
	if !strings.Contains(out, "Network error: Communication failed.") {
		t.Errorf("reload output = %q", out)
	}
	if r.Screen() != ScreenHome {
		t.Errorf("Screen() = %v, want home", r.Screen())
	}

	// The cached profile survives the failure
	out = f.exec(t, r, "show")
	if !strings.Contains(out, "Yuta Koshizawa") {
		t.Errorf("show output = %q", out)
	}
}

func TestREPL_ReloadUnauthenticatedReturnsToLogin(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	f.exec(t, r, "login koher 1234")
	f.store.Clear()

	out := f.exec(t, r, "reload")
	if !strings.Contains(out, "Authentication error: Please log in again.") {
		t.Errorf("reload output = %q", out)
	}
	if r.Screen() != ScreenLogin {
		t.Errorf("Screen() = %v, want login", r.Screen())
	}
}

func TestREPL_ScreenGating(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "reload", "show", "logout")
	if strings.Count(out, "not logged in") != 3 {
		t.Errorf("output = %q, want three rejections", out)
	}

	f.exec(t, r, "login koher 1234")
	out = f.exec(t, r, "login koher 1234")
	if !strings.Contains(out, "login: already logged in") {
		t.Errorf("output = %q", out)
	}
}

func TestREPL_Usage(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "login koher")
	if !strings.Contains(out, "usage: login <id> <password>") {
		t.Errorf("output = %q", out)
	}

	out = f.exec(t, r, "history x")
	if !strings.Contains(out, "usage: history [n]") {
		t.Errorf("output = %q", out)
	}
}

func TestREPL_UnknownCommand(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "lgout")
	if !strings.Contains(out, `Unknown command "lgout". Did you mean: logout?`) {
		t.Errorf("output = %q", out)
	}

	out = f.exec(t, r, "zzz")
	if strings.Contains(out, "Did you mean") {
		t.Errorf("output = %q, want no suggestion", out)
	}
}

func TestREPL_Help(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "help")
	if !strings.Contains(out, "login <id> <password>") {
		t.Errorf("login screen help = %q", out)
	}
	if strings.Contains(out, "reload") {
		t.Errorf("login screen help should not list home commands: %q", out)
	}

	f.exec(t, r, "login koher 1234")
	out = f.exec(t, r, "?")
	if !strings.Contains(out, "reload") || strings.Contains(out, "<password>") {
		t.Errorf("home screen help = %q", out)
	}
}

func TestREPL_Status(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	out := f.exec(t, r, "status")
	if !strings.Contains(out, "authenticated") || !strings.Contains(out, "false") {
		t.Errorf("status output = %q", out)
	}
	if strings.Contains(out, "Session [") {
		t.Error("no lifetime bar without a session")
	}

	f.exec(t, r, "login koher 1234")
	out = f.exec(t, r, "status")
	if !strings.Contains(out, "user.name") {
		t.Errorf("status output = %q, want flattened user", out)
	}
	if !strings.Contains(out, "Session [") || !strings.Contains(out, "/30s)") {
		t.Errorf("status output = %q, want lifetime bar", out)
	}
}

func TestREPL_StatusJSON(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl(WithFormat(output.FormatJSON))

	f.exec(t, r, "login koher 1234")
	before := len(f.out.String())
	f.exec(t, r, "status")
	out := f.out.String()[before:]

	var st service.Status
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("status output is not JSON: %v\n%s", err, out)
	}
	if !st.Authenticated || st.User == nil || st.User.ID != "koher" {
		t.Errorf("status = %+v", st)
	}
}

func TestREPL_HistoryMasksPassword(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	f.exec(t, r, "login koher 1234", "show")
	out := f.exec(t, r, "history")

	if strings.Contains(out, "1234") {
		t.Errorf("history leaked the password: %q", out)
	}
	if !strings.Contains(out, "login koher ****") {
		t.Errorf("history = %q", out)
	}

	out = f.exec(t, r, "history 1")
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("history 1 = %q, want one line", out)
	}
}

func TestREPL_Spinner(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl(WithSpinner(true))

	out := f.exec(t, r, "login koher 1234")
	if !strings.Contains(out, "Logging in...") || !strings.Contains(out, "Loading profile...") {
		t.Errorf("output = %q, want spinner messages", out)
	}
}

func TestREPL_CommandContextCancelled(t *testing.T) {
	f := newFixture(t, nil, nil)
	cancelled := func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}
	r := f.repl(WithCommandContext(cancelled))

	out := f.exec(t, r, "login koher 1234")
	if !strings.Contains(out, "Network error:") {
		t.Errorf("output = %q, want network alert for an interrupted call", out)
	}
}

func TestREPL_StartsOnHomeWhenAuthenticated(t *testing.T) {
	f := newFixture(t, nil, nil)
	if err := f.ctrl.Login(context.Background(), "koher", "1234"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	r := f.repl()
	if r.Screen() != ScreenHome {
		t.Errorf("Screen() = %v, want home", r.Screen())
	}
}

func TestREPL_StaleEventIgnored(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()
	f.exec(t, r, "login koher 1234")

	before := len(f.out.String())
	r.handleEvent(service.Event{Type: service.EventLoggedOut, Reason: session.ReasonExpired, At: time.Now()})

	if r.Screen() != ScreenHome {
		t.Error("event from an earlier session should not leave the home screen")
	}
	if len(f.out.String()) != before {
		t.Errorf("stale event printed %q", f.out.String()[before:])
	}
}

func TestREPL_Run(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl(WithIO(strings.NewReader("help\nlogin koher 1234\nexit\nshow\n"), f.out))

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := f.out.String()
	for _, want := range []string{"Type \"help\"", "login> ", "Logged in as koher", "koher@home> "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Yuta Koshizawa") != 1 {
		t.Errorf("commands after exit should not run:\n%s", out)
	}
}

func TestREPL_RunEOF(t *testing.T) {
	f := newFixture(t, nil, nil)
	r := f.repl()

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return at end of input")
	}
}

func TestREPL_RunContextCancel(t *testing.T) {
	f := newFixture(t, nil, nil)
	pr, pw := io.Pipe()
	defer pw.Close()
	r := f.repl(WithIO(pr, f.out))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	waitFor(t, f.out, "login> ")
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestREPL_RunExpiryReturnsToLogin(t *testing.T) {
	f := newFixture(t, nil, nil)
	pr, pw := io.Pipe()
	r := f.repl(WithIO(pr, f.out))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	io.WriteString(pw, "login koher 1234\n")
	waitFor(t, f.out, "koher@home> ")

	f.sch.fireLast()
	waitFor(t, f.out, "Session expired. Please log in again.")

	io.WriteString(pw, "reload\n")
	waitFor(t, f.out, "reload: not logged in")

	pw.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after input closed")
	}
}
