package services

import (
	"context"
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/goldloom/jewelshop_backend/internal/dto"
)

// UserSvcFacade manages operator accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// AuthSvcFacade issues access tokens for local and Google sign-in.
type AuthSvcFacade interface {
	// Login verifies local credentials and returns a signed JWT.
	Login(ctx context.Context, username, password string) (string, time.Time, error)

	// GoogleSignIn validates a Google ID token, finds or creates the matching
	// user and returns a signed JWT.
	GoogleSignIn(ctx context.Context, idToken string) (string, time.Time, error)

	// GoogleAuthURL builds the consent-screen redirect URL for the
	// server-side OAuth code flow.
	GoogleAuthURL(state string) string

	// GoogleCallback exchanges an authorization code, validates the returned
	// ID token and signs the user in.
	GoogleCallback(ctx context.Context, code string) (string, time.Time, error)
}
