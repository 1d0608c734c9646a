package cli

import (
	"context"
	"fmt"
	"strings"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials and authenticates. On success it prints the
// signed-in username; on failure, the controller's user-facing message.
// The password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.ctrl.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, a.ctrl.ErrorText())
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", a.ctrl.Cache().Username())
	return nil
}

// Register prompts for the registration fields and creates an account.
// The confirmation password is read separately so the mismatch check
// happens in the controller, like in the interactive UI.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	if err := a.ctrl.Register(ctx, email, username, string(password), string(confirm)); err != nil {
		fmt.Fprintln(a.out, a.ctrl.ErrorText())
		return err
	}
	fmt.Fprintf(a.out, "Account created. Signed in as %s\n", a.ctrl.Cache().Username())
	return nil
}

// Logout clears the persisted session. Always succeeds.
func (a *App) Logout(ctx context.Context) {
	a.ctrl.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
}

// WhoAmI restores the persisted session and prints the profile summary.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.ctrl.RestoreSession(ctx); err != nil {
		return err
	}
	if !a.ctrl.Authenticated() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	cache := a.ctrl.Cache()
	fmt.Fprintf(a.out, "%s · %d xp · %d day streak · %s (%s)\n",
		cache.Username(),
		cache.TotalXP(),
		cache.StreakDays(),
		cache.SkillLevel(),
		strings.Join(cache.PreferredLanguages(), ", "),
	)
	return nil
}
