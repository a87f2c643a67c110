package firebase

import (
	"context"
	"errors"

	"movie-review/internal/data/entity"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier checks a bearer ID token and returns the identity it carries.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (entity.Identity, error)
}

// IDTokenVerifier is the part of *auth.Client used for verification.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthVerifier struct {
	client IDTokenVerifier
}

var _ TokenVerifier = (*AuthVerifier)(nil)

func NewAuthVerifier(client IDTokenVerifier) *AuthVerifier {
	return &AuthVerifier{client: client}
}

func (v *AuthVerifier) VerifyToken(ctx context.Context, idToken string) (entity.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return entity.Identity{}, err
	}
	return IdentityFromToken(token), nil
}

// IdentityFromToken reads uid plus the optional email and name claims.
func IdentityFromToken(token *auth.Token) entity.Identity {
	identity := entity.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity
}

// ErrNotInitialized is returned for every token when the Firebase app could not
// be created at startup.
var ErrNotInitialized = errors.New("firebase auth not initialized")

type unavailableVerifier struct{}

// Unavailable returns a verifier that rejects every token, so a process without
// identity provider credentials still serves public routes.
func Unavailable() TokenVerifier {
	return unavailableVerifier{}
}

func (unavailableVerifier) VerifyToken(context.Context, string) (entity.Identity, error) {
	return entity.Identity{}, ErrNotInitialized
}
