// Package auth checks credentials and keeps track of the logged-in user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/work-hours-logger/internal/config"
)

const (
	ProviderLocal  = "local"
	ProviderOAuth2 = "oauth2"
)

var ErrUnknownProvider = errors.New("unknown auth provider")

// Authenticator checks a username and password. A rejected login returns
// false with a nil error; errors are reserved for failures to check.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (bool, error)
}

// New returns the Authenticator selected by cfg.Provider.
func New(cfg config.AuthConfig) (Authenticator, error) {
	switch cfg.Provider {
	case "", ProviderLocal:
		return &LocalAuthenticator{Users: cfg.Users}, nil
	case ProviderOAuth2:
		if cfg.OAuth2.TokenURL == "" {
			return nil, errors.New("auth.oauth2.token_url is not set")
		}
		return NewOAuth2Authenticator(cfg.OAuth2, nil), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, cfg.Provider)
	}
}

// LocalAuthenticator checks passwords against argon2id hashes keyed by
// lower-cased username.
type LocalAuthenticator struct {
	Users map[string]string
}

func (a *LocalAuthenticator) Login(_ context.Context, username, password string) (bool, error) {
	hash, ok := a.lookup(username)
	if !ok || password == "" {
		return false, nil
	}
	err := VerifyPassword(hash, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrPasswordMismatch):
		return false, nil
	default:
		return false, fmt.Errorf("checking password of %q: %w", username, err)
	}
}

func (a *LocalAuthenticator) lookup(username string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(username))
	for name, hash := range a.Users {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return hash, true
		}
	}
	return "", false
}

// OAuth2Authenticator exchanges the credentials for a token with the
// resource owner password grant. Any token counts as a successful login.
type OAuth2Authenticator struct {
	cfg    *oauth2.Config
	client *http.Client
}

// NewOAuth2Authenticator returns an authenticator for the token endpoint in
// cfg. A nil client selects http.DefaultClient.
func NewOAuth2Authenticator(cfg config.OAuth2Config, client *http.Client) *OAuth2Authenticator {
	return &OAuth2Authenticator{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
	}
}

func (a *OAuth2Authenticator) Login(ctx context.Context, username, password string) (bool, error) {
	if a.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	}
	tok, err := a.cfg.PasswordCredentialsToken(ctx, strings.TrimSpace(username), password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return false, nil
		}
		return false, fmt.Errorf("requesting token: %w", err)
	}
	return tok.Valid(), nil
}
