// Package models contains the client-side projections of server-owned
// entities: users, markets, trades, transactions and positions. The JSON
// tags follow the wire format of the backend API and are also used for
// local persistence of the session user.
package models

import "time"

// Theme values accepted by the profile endpoint.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// User is the server-authoritative profile projection.
//
// A User with ID == 0 is a locally fabricated placeholder created right
// after a credential exchange, before the authoritative profile has been
// fetched. Callers that need a real server id must check Resolved() first.
type User struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	Balance            float64   `json:"balance"`
	IsAdmin            bool      `json:"is_admin"`
	AvatarURL          *string   `json:"avatar_url,omitempty"`
	Theme              string    `json:"theme"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

// Resolved reports whether the profile has been reconciled with the server.
func (u *User) Resolved() bool {
	return u.ID > 0
}

// Clone returns a deep copy of the user. Nil-safe.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.AvatarURL != nil {
		v := *u.AvatarURL
		c.AvatarURL = &v
	}
	return &c
}

// PlaceholderUser builds the stand-in profile used between a successful
// credential exchange and the authoritative /auth/me fetch. The id stays at
// the zero sentinel and preference fields take server defaults.
func PlaceholderUser(username string) *User {
	return &User{
		ID:                 0,
		Username:           username,
		Balance:            0,
		IsAdmin:            false,
		Theme:              ThemeDark,
		EmailNotifications: true,
	}
}
