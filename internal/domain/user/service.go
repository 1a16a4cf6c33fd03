package user

import "context"

// Service exposes account use-cases used by the HTTP layer.
type Service interface {
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
	DeleteAccount(ctx context.Context, userID string) error
	VerifyToken(token string) (*Claims, error)
}
