package service

import (
	"context"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/core/session"
)

// Profile is a directory entry. One of Introductions is chosen per fetch.
type Profile struct {
	Name          string
	Introductions []string
}

// Directory maps user ids to profiles.
type Directory map[string]Profile

// DefaultDirectory returns the profile of the demo account.
func DefaultDirectory() Directory {
	return Directory{
		"koher": {
			Name: "Yuta Koshizawa",
			Introductions: []string{
				"ソフトウェアエンジニア。 Heart of Swift https://heart-of-swift.github.io を書きました。",
				"ソフトウェアエンジニア。 Swift Zoomin' https://swift-tweets.connpass.com/ を主催しています。",
			},
		},
	}
}

// UserGateway simulates the remote profile backend.
//
// It reads the session Store to decide whether the caller is authenticated
// and never mutates it.
type UserGateway struct {
	store     *session.Store
	directory Directory
	latency   time.Duration
	opts      gatewayOptions
}

// NewUserGateway creates a UserGateway. A nil directory uses DefaultDirectory.
func NewUserGateway(store *session.Store, directory Directory, latency time.Duration, opts ...GatewayOption) (*UserGateway, error) {
	if store == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("session store is required")
	}
	if directory == nil {
		directory = DefaultDirectory()
	}
	if latency < 0 {
		latency = 0
	}
	g := &UserGateway{
		store:     store,
		directory: directory,
		latency:   latency,
		opts:      buildGatewayOptions(opts),
	}
	g.opts.log = g.opts.log.With("component", "user_gateway")
	return g, nil
}

// CurrentUser returns the profile of the session subject.
//
// Without a token it fails with ErrUnauthenticated before any wait. Otherwise
// it follows the same latency and outcome rules as AuthGateway.Login.
func (g *UserGateway) CurrentUser(ctx context.Context) (domain.User, error) {
	tok, ok := g.store.Current()
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	subject := tok.Subject()
	log := g.opts.log.WithContext(ctx)

	if err := g.opts.sleep(ctx, g.latency); err != nil {
		return domain.User{}, domain.ErrNetwork.WithCause(err)
	}

	if outcome := g.opts.outcomes.Next(); outcome != OutcomeSuccess {
		log.Debug("simulated profile failure", "outcome", outcome.String())
		return domain.User{}, outcome.Err()
	}

	profile, ok := g.directory[subject]
	if !ok {
		return domain.User{}, domain.ErrSystemFault.WithDetails("no profile for " + subject)
	}

	var intro string
	if n := len(profile.Introductions); n > 0 {
		intro = profile.Introductions[g.opts.outcomes.Pick(n)]
	}

	user, err := domain.NewUser(subject, profile.Name, intro)
	if err != nil {
		return domain.User{}, domain.ErrSystemFault.WithCause(err)
	}
	return user, nil
}
