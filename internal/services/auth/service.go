package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// EventRecorder counts authentication outcomes.
type EventRecorder interface {
	AuthEvent(event string)
}

type Options struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
}

// Service implements user.Service on top of a repository, bcrypt and JWT.
type Service struct {
	repo   userdomain.Repository
	tokens *Tokens
	events EventRecorder
	logger *slog.Logger
	cost   int
	now    func() time.Time
}

func New(repo userdomain.Repository, opts Options, events EventRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		repo:   repo,
		tokens: NewTokens(opts.Secret, ttl),
		events: events,
		logger: logger.With("component", "auth"),
		cost:   cost,
		now:    utils.NowUTC,
	}
}

// Login authenticates by email or username.
func (s *Service) Login(ctx context.Context, in userdomain.LoginInput) (userdomain.AuthResult, error) {
	login := in.Email
	if login == "" {
		login = in.Username
	}
	if login == "" || in.Password == "" {
		return userdomain.AuthResult{}, userdomain.ErrMissingCredentials
	}

	u, err := s.repo.FindUserByLogin(ctx, login)
	if err != nil {
		s.record("login_failed")
		return userdomain.AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		s.record("login_failed")
		return userdomain.AuthResult{}, userdomain.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return userdomain.AuthResult{}, err
	}
	s.record("login")
	s.logger.Info("user logged in", "user_id", u.ID)
	return userdomain.AuthResult{Token: token, User: u.Summary()}, nil
}

// Register creates an account and signs it in. The stored username is the
// given username, else the name, else the local part of the email.
func (s *Service) Register(ctx context.Context, in userdomain.RegisterInput) (userdomain.AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return userdomain.AuthResult{}, err
	}
	username := ""
	switch {
	case in.Username != nil:
		username = *in.Username
	case in.Name != nil:
		username = *in.Name
	default:
		username, _, _ = strings.Cut(*in.Email, "@")
	}

	u, err := s.CreateUser(ctx, username, *in.Email, *in.Password)
	if err != nil {
		return userdomain.AuthResult{}, err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return userdomain.AuthResult{}, err
	}
	s.record("register")
	return userdomain.AuthResult{Message: "User created successfully", Token: token, User: u.Summary()}, nil
}

// CreateUser stores a new account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (userdomain.User, error) {
	exists, err := s.repo.UserExists(ctx, username, email)
	if err != nil {
		return userdomain.User{}, err
	}
	if exists {
		return userdomain.User{}, userdomain.ErrUserExists
	}
	hash, err := s.hash(password)
	if err != nil {
		return userdomain.User{}, err
	}
	now := s.now()
	u := userdomain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         userdomain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return userdomain.User{}, err
	}
	s.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, in userdomain.ChangePasswordInput) error {
	if in.OldPassword == "" || in.NewPassword == "" {
		return userdomain.ErrMissingFields
	}
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.OldPassword)) != nil {
		return userdomain.ErrIncorrectOldPassword
	}
	if err := s.setPassword(ctx, u.ID, in.NewPassword); err != nil {
		return err
	}
	s.record("password_changed")
	return nil
}

// ResetPassword sets a new password for the account matching both username
// and email. There is no email confirmation step.
func (s *Service) ResetPassword(ctx context.Context, in userdomain.ResetPasswordInput) error {
	if in.NewPassword == "" {
		return userdomain.ErrMissingFields
	}
	u, err := s.repo.FindUserByUsernameAndEmail(ctx, in.Username, in.Email)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, u.ID, in.NewPassword); err != nil {
		return err
	}
	s.record("password_reset")
	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.record("account_deleted")
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

func (s *Service) VerifyToken(token string) (*userdomain.Claims, error) {
	return s.tokens.Verify(token)
}

func (s *Service) setPassword(ctx context.Context, userID, password string) error {
	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash, s.now())
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &userdomain.ValidationError{Field: "password", Message: `"password" is too long`}
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) record(event string) {
	if s.events != nil {
		s.events.AuthEvent(event)
	}
}
