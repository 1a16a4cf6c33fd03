package user

import (
	"context"
	"time"
)

// Repository defines persistent storage operations for accounts.
type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	// FindUserByLogin matches login against email or username.
	FindUserByLogin(ctx context.Context, login string) (User, error)
	FindUserByUsernameAndEmail(ctx context.Context, username, email string) (User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
}
