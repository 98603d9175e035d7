package auth

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Provider is the authentication collaborator
type Provider interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
	SignOut(ctx context.Context, uid string) error
}

// ErrInvalidIDToken is returned for tokens the provider rejects
var ErrInvalidIDToken = errors.New("invalid id token")

// FirebaseProvider verifies Firebase ID tokens with the admin SDK
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(client *auth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	id := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if phone, ok := token.Claims["phone_number"].(string); ok {
		id.Phone = phone
	}
	return id, nil
}

// SignOut revokes every refresh token of the user
func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("error revoking tokens for %s: %w", uid, err)
	}
	return nil
}
