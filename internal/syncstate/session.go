package syncstate

import (
	"context"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/remote"
)

// CurrentUser returns the signed-in user, if any.
func (s *Service) CurrentUser() (model.User, bool) {
	user := s.currentUser.Get()
	if user == nil {
		return model.User{}, false
	}
	return *user, true
}

// Login signs in against the backend. Backend errors are returned unchanged
// and leave local state untouched.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	result, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	return s.signIn(result, "Logged in successfully"), nil
}

func (s *Service) Register(ctx context.Context, email, password, name string) (model.User, error) {
	result, err := s.remote.Register(ctx, email, password, name)
	if err != nil {
		return model.User{}, err
	}
	return s.signIn(result, "Account created"), nil
}

func (s *Service) signIn(result remote.AuthResult, details string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := result.User.Local()
	now := s.now()
	user.LastLogin = &now
	s.currentUser.Set(&user)
	s.record(model.ItemUser, user.ID, user.DisplayName(), model.ActionUserLogin, details)
	return user
}

// Logout forgets the user and the session token.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.CurrentUser(); ok {
		s.record(model.ItemUser, user.ID, user.DisplayName(), model.ActionUserLogout, "Logged out successfully")
	}
	s.currentUser.Reset()
	s.remote.Logout()
}

func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if _, err := s.remote.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, _ := s.CurrentUser()
	s.record(model.ItemUser, user.ID, user.DisplayName(), model.ActionSettingsChanged, "Password changed")
	return nil
}

// DeleteAccount deletes the backend account, then signs out locally.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if _, err := s.remote.DeleteAccount(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, _ := s.CurrentUser()
	s.record(model.ItemUser, user.ID, user.DisplayName(), model.ActionUserLogout, "Account deleted")
	s.currentUser.Reset()
	return nil
}

// UpdateProfile merges patch into the signed-in user. A plan change renews
// the subscription for one year unless the patch sets an expiry.
func (s *Service) UpdateProfile(patch model.UserPatch) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.CurrentUser()
	if !ok {
		return model.User{}, ErrNotSignedIn
	}
	if patch.Subscription != nil && patch.SubscriptionExpiry == nil {
		expiry := s.now().AddDate(1, 0, 0).UTC().Format("2006-01-02")
		patch.SubscriptionExpiry = &expiry
	}
	updated := patch.Apply(current)
	s.currentUser.Set(&updated)
	s.record(model.ItemUser, updated.ID, updated.DisplayName(), model.ActionSettingsChanged, "Profile updated")
	return updated, nil
}
