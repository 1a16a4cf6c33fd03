package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

// ErrConflict indicates a duplicate username or email.
var ErrConflict = errors.New("conflict")

type UserRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

func (r *Repository) InsertUser(ctx context.Context, row UserRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Username, row.Email, row.PasswordHash, row.Role,
		formatTime(row.CreatedAt), formatTime(row.UpdatedAt))
	if utils.IsUniqueConstraintError(err) {
		return fmt.Errorf("%w: user %s", ErrConflict, row.Username)
	}
	return err
}

func (r *Repository) GetUser(ctx context.Context, id string) (UserRow, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindUserByLogin matches login against email first, then username.
func (r *Repository) FindUserByLogin(ctx context.Context, login string) (UserRow, error) {
	return r.queryUser(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE email = ? OR username = ?
		ORDER BY CASE WHEN email = ? THEN 0 ELSE 1 END
		LIMIT 1`, login, login, login)
}

func (r *Repository) FindUserByUsernameAndEmail(ctx context.Context, username, email string) (UserRow, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? AND email = ?`, username, email)
}

// UserExists reports whether username or email is already taken.
func (r *Repository) UserExists(ctx context.Context, username, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, username, email).Scan(&n)
	return n > 0, err
}

func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, formatTime(at), id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *Repository) queryUser(ctx context.Context, query string, args ...any) (UserRow, error) {
	var (
		row                  UserRow
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.Username, &row.Email, &row.PasswordHash, &row.Role, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRow{}, ErrNotFound
	}
	if err != nil {
		return UserRow{}, err
	}
	row.CreatedAt = parseTime(createdAt)
	row.UpdatedAt = parseTime(updatedAt)
	return row, nil
}
