package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/client/session"
	"github.com/avelichko/snipcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
// Registration success does not log the user in; they are told to log in
// explicitly. The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.session.Register(ctx, models.RegisterRequest{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	if result.Message != "" {
		printlnFn(result.Message)
	} else {
		printlnFn("Account created. You can now log in.")
	}
	return nil
}

// Login prompts for credentials and authenticates. Credential rejection is
// reported as such; any other failure is shown verbatim. The password is
// securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			printlnFn("Invalid email or password.")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", sess.Profile.DisplayName(), sess.Profile.SubscriptionTier))
	return nil
}

// Logout clears the session. The remote call is best-effort; the local
// session is gone either way.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Profile prints the cached profile snapshot and, when the token carries an
// expiry claim, the time it expires.
func (a *App) Profile(ctx context.Context) error {
	p := a.session.Current()
	if p == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("Email:  %s", p.Email))
	printlnFn(fmt.Sprintf("Name:   %s", p.DisplayName()))
	printlnFn(fmt.Sprintf("Tier:   %s", p.SubscriptionTier))
	if exp, ok := a.session.TokenExpiry(); ok {
		printlnFn(fmt.Sprintf("Session valid until %s", exp.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

// UpdateProfile edits the cached profile in place. Empty answers keep the
// current values.
func (a *App) UpdateProfile(ctx context.Context) error {
	p := a.session.Current()
	if p == nil {
		printlnFn("Not logged in.")
		return nil
	}

	email, err := GetOptionalText(a.reader, "Email", p.Email, os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := GetOptionalText(a.reader, "First name", p.FirstName, os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := GetOptionalText(a.reader, "Last name", p.LastName, os.Stdout)
	if err != nil {
		return err
	}

	a.session.UpdateProfile(ctx, session.ProfileUpdate{
		Email:     &email,
		FirstName: &firstName,
		LastName:  &lastName,
	})
	printlnFn("Profile updated.")
	return nil
}
