package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
	"github.com/goldloom/jewelshop_backend/internal/platform/config"
	"github.com/goldloom/jewelshop_backend/internal/utils"
)

// authService verifies credentials and issues access tokens.
type authService struct {
	cfg          *config.Config
	userSvc      portssvc.UserSvcFacade
	oauth2Config *oauth2.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:     cfg,
		userSvc: userSvc,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies local credentials and returns a signed JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same response as a wrong password so usernames cannot be probed.
			return "", time.Time{}, apperrors.ErrUnauthorized
		}
		return "", time.Time{}, fmt.Errorf("looking up user: %w", err)
	}

	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Login rejected", "username", username)
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	return s.issueToken(user)
}

// GoogleSignIn validates a frontend-supplied Google ID token and signs the
// matching user in, provisioning an account on first use.
func (s *authService) GoogleSignIn(ctx context.Context, idTokenString string) (string, time.Time, error) {
	if s.cfg.GoogleClientID == "" {
		return "", time.Time{}, errors.New("google sign-in is not configured")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("google ID token validation failed: %w", err)
	}

	info := domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		VerifiedEmail: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
	}
	if !info.VerifiedEmail {
		return "", time.Time{}, apperrors.NewAppError(401, "google email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userSvc.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.issueToken(user)
}

// GoogleAuthURL builds the consent-screen redirect for the server-side code
// flow.
func (s *authService) GoogleAuthURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// GoogleCallback exchanges the authorization code, pulls the ID token out of
// the token response and completes sign-in.
func (s *authService) GoogleCallback(ctx context.Context, code string) (string, time.Time, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("exchanging authorization code: %w", err)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return "", time.Time{}, errors.New("token response carried no id_token")
	}
	return s.GoogleSignIn(ctx, idTokenString)
}

func (s *authService) issueToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return token, expiresAt, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	v, ok := claims[key].(bool)
	return ok && v
}
