package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": *email, "password": *password}); err != nil {
		return err
	}
	user, err := a.state.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": *email, "password": *password}); err != nil {
		return err
	}
	user, err := a.state.Register(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created, signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) logout(_ context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	a.state.Logout()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) passwd(ctx context.Context, args []string) error {
	fs := a.flags("passwd")
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"old": *oldPassword, "new": *newPassword}); err != nil {
		return err
	}
	if err := a.state.ChangePassword(ctx, *oldPassword, *newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	fs := a.flags("reset-password")
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	newPassword := fs.String("new", "", "new password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"username": *username, "email": *email, "new": *newPassword}); err != nil {
		return err
	}
	ack, err := a.backend.ResetPassword(ctx, *username, *email, *newPassword)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ack.Message)
	return nil
}

func (a *App) deleteAccount(ctx context.Context, args []string) error {
	fs := a.flags("delete-account")
	yes := fs.Bool("yes", false, "confirm deletion")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("%w: pass -yes to delete the account", ErrUsage)
	}
	if err := a.state.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "set" {
		return a.show(ctx, append([]string{"profile"}, args...))
	}
	fs := a.flags("profile set")
	var patch model.UserPatch
	optionalString(fs, &patch.FirstName, "first", "first name")
	optionalString(fs, &patch.LastName, "last", "last name")
	optionalString(fs, &patch.Email, "email", "email address")
	optionalString(fs, &patch.Phone, "phone", "phone number")
	optionalString(fs, &patch.Address, "address", "postal address")
	plan := fs.String("plan", "", "subscription plan: Free, Premium or Pro")
	if _, err := parse(fs, args[1:]); err != nil {
		return err
	}
	if *plan != "" {
		sub, err := parseSubscription(*plan)
		if err != nil {
			return err
		}
		patch.Subscription = &sub
	}
	user, err := a.state.UpdateProfile(patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s (%s plan, %d devices max)\n", user.DisplayName(), user.Subscription, user.MaxDevices)
	return nil
}

func parseSubscription(raw string) (model.Subscription, error) {
	for _, sub := range []model.Subscription{model.SubscriptionFree, model.SubscriptionPremium, model.SubscriptionPro} {
		if strings.EqualFold(strings.TrimSpace(raw), string(sub)) {
			return sub, nil
		}
	}
	return "", fmt.Errorf("%w: unknown plan %q", ErrUsage, raw)
}
