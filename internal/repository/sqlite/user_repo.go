package sqlite

import (
	"context"
	"errors"
	"time"

	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
	"github.com/micro-ha/smarthome-dashboard/internal/storage"
)

// UserRepository is sqlite implementation of user.Repository.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates sqlite-backed account repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u userdomain.User) error {
	return mapUserErr(r.db.storage.InsertUser(ctx, storage.UserRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}))
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (userdomain.User, error) {
	return toUser(r.db.storage.GetUser(ctx, id))
}

func (r *UserRepository) FindUserByLogin(ctx context.Context, login string) (userdomain.User, error) {
	return toUser(r.db.storage.FindUserByLogin(ctx, login))
}

func (r *UserRepository) FindUserByUsernameAndEmail(ctx context.Context, username, email string) (userdomain.User, error) {
	return toUser(r.db.storage.FindUserByUsernameAndEmail(ctx, username, email))
}

func (r *UserRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	return r.db.storage.UserExists(ctx, username, email)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	return mapUserErr(r.db.storage.UpdatePassword(ctx, id, passwordHash, at))
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return mapUserErr(r.db.storage.DeleteUser(ctx, id))
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	return r.db.storage.CountUsers(ctx)
}

func toUser(row storage.UserRow, err error) (userdomain.User, error) {
	if err != nil {
		return userdomain.User{}, mapUserErr(err)
	}
	return userdomain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return userdomain.ErrUserNotFound
	case errors.Is(err, storage.ErrConflict):
		return userdomain.ErrUserExists
	default:
		return err
	}
}
