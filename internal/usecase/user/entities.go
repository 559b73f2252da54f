package user

import (
	"context"

	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/infrastructure/authprovider"
)

// IdentityProvider is the slice of the auth provider this package drives.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*authprovider.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*authprovider.Session, error)
	AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (*authprovider.User, error)
	AdminDeleteUser(ctx context.Context, userID string) error
}

type CreateUserInput struct {
	Email      string
	Password   string
	Role       profile.Role
	FullName   string
	Phone      string
	DocumentID string
}
