package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"predmarket-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username and password and attempts to
// create a new account. On success the account is signed in immediately;
// if the account was created but the automatic sign-in failed, the flow
// message says so and the user can log in manually.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, username, string(password))
	if err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	fmt.Printf("Welcome, %s!\n", user.Username)
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// A successful credential exchange counts as logged in even when the
// follow-up profile fetch fails; in that case the balance shows as 0
// until the next refresh.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	fmt.Printf("Welcome, %s!\n", user.Username)
	return nil
}

// Logout clears the local session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("logout: %v", err)
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// Whoami shows the current session: profile fields plus the token expiry
// read from the JWT. The token is not verified locally; the server is the
// authority and an expired token trips the 401 hook on the next request.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}

	a.auth.RefreshSession(ctx)

	u := a.store.CurrentUser()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Username:      %s\n", u.Username)
	if u.Resolved() {
		fmt.Printf("Balance:       %.2f\n", u.Balance)
		fmt.Printf("Admin:         %t\n", u.IsAdmin)
		fmt.Printf("Theme:         %s\n", u.Theme)
		fmt.Printf("Notifications: %t\n", u.EmailNotifications)
	} else {
		fmt.Println("Profile:       not loaded yet")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(a.store.Token(), claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			fmt.Printf("Token expires: %s\n", exp.Time.Local().Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
