package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/common"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/services"
)

// Profile shows the current profile and prompts for edits. An empty
// answer keeps the current value; only changed fields are submitted.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return nil
	}

	a.auth.RefreshSession(ctx)

	u := a.store.CurrentUser()
	if u == nil || !u.Resolved() {
		fmt.Println("Profile not loaded yet, try again")
		return nil
	}

	avatar := ""
	if u.AvatarURL != nil {
		avatar = *u.AvatarURL
	}
	fmt.Printf("Avatar URL: %s\nTheme: %s\nEmail notifications: %t\n", avatar, u.Theme, u.EmailNotifications)

	var update api.ProfileUpdate

	s, err := getSimpleText(a.reader, "New avatar URL (empty to keep, '-' to clear)", os.Stdout)
	if err != nil {
		return err
	}
	switch s {
	case "":
	case "-":
		empty := ""
		update.AvatarURL = &empty
	default:
		update.AvatarURL = &s
	}

	s, err = getSimpleText(a.reader, "Theme: dark or light (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if s != "" {
		theme := strings.ToLower(s)
		if theme != models.ThemeDark && theme != models.ThemeLight {
			fmt.Println("Theme must be dark or light")
			return fmt.Errorf("invalid theme %q", s)
		}
		update.Theme = &theme
	}

	s, err = getSimpleText(a.reader, "Email notifications: y/n (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if s != "" {
		enabled := strings.ToLower(s) == "y"
		update.EmailNotifications = &enabled
	}

	if update.AvatarURL == nil && update.Theme == nil && update.EmailNotifications == nil {
		fmt.Println("Nothing to change")
		return nil
	}

	if _, err := a.auth.UpdateProfile(ctx, update); err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	fmt.Println(services.MsgProfileSaved)
	return nil
}

// Passwd runs the password change flow. The new password is validated
// locally before any network call; both password buffers are wiped.
func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return nil
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	newPw, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.ChangePassword(ctx, string(current), string(newPw), string(confirm)); err != nil {
		fmt.Println(flowMessage(err))
		return err
	}

	fmt.Println(services.MsgPasswordChanged)
	return nil
}
