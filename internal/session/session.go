// Package session keeps the credential issued by a successful login and is
// the single place the client asks "is the user authenticated".
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// StorageKey is the fixed key the token lives under in every backend.
const StorageKey = "authToken"

var ErrNoSession = errors.New("not logged in")

// Token is the opaque access token returned by the login endpoint.
type Token string

// Store persists at most one token. Writes come only from the login flow,
// reads from anyone.
type Store interface {
	Issue(ctx context.Context, tok Token) error
	Current(ctx context.Context) (Token, bool, error)
	Clear(ctx context.Context) error
}

// Auth wraps a Store and is injected into the gateway, the login flow and
// the CLI.
type Auth struct {
	store Store
	log   zerolog.Logger
}

func NewAuth(store Store, log zerolog.Logger) *Auth {
	return &Auth{store: store, log: log}
}

func (a *Auth) Issue(ctx context.Context, tok Token) error {
	if tok == "" {
		return errors.New("empty token")
	}
	return a.store.Issue(ctx, tok)
}

func (a *Auth) Current(ctx context.Context) (Token, bool, error) {
	return a.store.Current(ctx)
}

func (a *Auth) Clear(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Require returns the current token or ErrNoSession.
func (a *Auth) Require(ctx context.Context) (Token, error) {
	tok, ok, err := a.store.Current(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoSession
	}
	return tok, nil
}

func (a *Auth) Authenticated(ctx context.Context) bool {
	_, err := a.Require(ctx)
	return err == nil
}

// Credential implements gateway.CredentialSource. A broken store is logged
// and treated as "no credential".
func (a *Auth) Credential(ctx context.Context) (string, bool) {
	tok, ok, err := a.store.Current(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("read session")
		return "", false
	}
	return string(tok), ok
}
