package repositories

import (
	"context"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// UserRepositoryFacade defines storage operations for operator accounts.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
