// Package auth fetches Google-signed identity tokens for the backend.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// TokenSource yields a bearer identity token scoped to an audience.
type TokenSource interface {
	IDToken(ctx context.Context, audience string) (string, error)
}

// GoogleTokenSource mints ID tokens from the ambient Google credentials
// (metadata server or application default credentials). Every call builds a
// fresh token source, so tokens are never cached or refreshed here.
type GoogleTokenSource struct{}

func (GoogleTokenSource) IDToken(ctx context.Context, audience string) (string, error) {
	ts, err := idtoken.NewTokenSource(ctx, audience)
	if err != nil {
		return "", fmt.Errorf("failed to build token source for %s: %w", audience, err)
	}
	tok, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("failed to fetch identity token: %w", err)
	}
	return tok.AccessToken, nil
}
