package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// firebaseIdentityProvider validates Firebase ID tokens. The subject returned
// is the email claim when present, otherwise the Firebase UID.
type firebaseIdentityProvider struct {
	client *firebaseauth.Client
}

func NewFirebaseIdentityProvider(ctx context.Context, credentialsFile, projectID string) (IdentityProvider, error) {
	conf := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &firebaseIdentityProvider{client: client}, nil
}

func (p *firebaseIdentityProvider) ValidateToken(ctx context.Context, token string) (string, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if email, ok := decoded.Claims["email"].(string); ok && email != "" {
		return email, nil
	}
	return decoded.UID, nil
}
