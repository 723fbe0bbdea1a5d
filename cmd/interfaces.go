package cmd

import (
	"context"

	"github.com/aaearon/check-secunet/internal/konnektor"
	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// konnektorSession interface for one authenticated session against the konnektor
type konnektorSession interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	konnektor.Querier
}

// sessionFactory creates a konnektorSession for the given connection options
type sessionFactory func(opts konnektor.ClientOptions) konnektorSession

// passwordPrompter asks for the password of a user
type passwordPrompter func(username string) (string, error)

// selfUpdater interface for looking up and installing GitHub releases.
// Satisfied by *selfupdate.Updater.
type selfUpdater interface {
	UpdateSelf(current semver.Version, slug string) (*selfupdate.Release, error)
	DetectLatest(slug string) (*selfupdate.Release, bool, error)
}
