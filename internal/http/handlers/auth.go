package handlers

import (
	"errors"
	"net/http"

	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
)

// Login authenticates by email or username and returns a bearer token.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var payload userdomain.LoginInput
	if !decodeJSON(w, r, &payload, false) {
		return
	}
	result, err := a.users.Login(r.Context(), payload)
	if err != nil {
		a.writeAuthError(w, err, http.StatusUnauthorized, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Register creates an account and signs it in.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var payload userdomain.RegisterInput
	if !decodeJSON(w, r, &payload, true) {
		return
	}
	result, err := a.users.Register(r.Context(), payload)
	if err != nil {
		a.writeAuthError(w, err, http.StatusNotFound, "Registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (a *API) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := userdomain.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}
	var payload userdomain.ChangePasswordInput
	if !decodeJSON(w, r, &payload, false) {
		return
	}
	if err := a.users.ChangePassword(r.Context(), claims.UserID, payload); err != nil {
		a.writeAuthError(w, err, http.StatusNotFound, "Failed to change password")
		return
	}
	writeMessage(w, "Password changed successfully")
}

// ResetPassword sets a new password for a matching username and email pair.
func (a *API) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload userdomain.ResetPasswordInput
	if !decodeJSON(w, r, &payload, false) {
		return
	}
	if err := a.users.ResetPassword(r.Context(), payload); err != nil {
		a.writeAuthError(w, err, http.StatusNotFound, "Failed to reset password")
		return
	}
	writeMessage(w, "Password reset successfully")
}

func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := userdomain.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}
	if err := a.users.DeleteAccount(r.Context(), claims.UserID); err != nil {
		a.writeAuthError(w, err, http.StatusNotFound, "Failed to delete account")
		return
	}
	writeMessage(w, "Account deleted successfully")
}

// Protected echoes the verified token claims.
func (a *API) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := userdomain.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "You are authenticated!", "user": claims})
}

// writeAuthError maps account errors to responses. Login answers an unknown
// user with 401; the other endpoints pass notFoundStatus 404.
func (a *API) writeAuthError(w http.ResponseWriter, err error, notFoundStatus int, fallback string) {
	var verr *userdomain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, userdomain.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Email/username and password are required")
	case errors.Is(err, userdomain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, userdomain.ErrUserExists):
		writeError(w, http.StatusConflict, "User or email already exists")
	case errors.Is(err, userdomain.ErrUserNotFound):
		writeError(w, notFoundStatus, "User not found")
	case errors.Is(err, userdomain.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, userdomain.ErrIncorrectOldPassword):
		writeError(w, http.StatusUnauthorized, "Incorrect old password")
	default:
		a.logger.Error("auth request failed", "err", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
