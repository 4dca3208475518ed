// Package services contains the application services for the client: the
// ordered mutation flows around authentication (login, register-then-login,
// profile update, password change), the session refresh guard, and the
// market/admin operations built on the API gateway.
package services

import (
	"context"
	"errors"
	"sync/atomic"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/logging"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/session"
)

// User-facing messages surfaced by the auth flows. Each submission attempt
// produces at most one of them.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgRegisterFailed     = "Registration failed. Username may already exist."
	MsgAccountCreated     = "Account created! Please sign in."
	MsgPasswordMismatch   = "New passwords do not match"
	MsgPasswordTooShort   = "New password must be at least 6 characters"
	MsgPasswordChanged    = "Password changed successfully"
	MsgProfileSaved       = "Profile saved"
)

// MinPasswordLength is validated locally before any network call.
const MinPasswordLength = 6

// Local validation failures; detected before the network is touched.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password too short")
)

// ErrBusy is returned when a flow is re-submitted while a previous
// instance of the same flow is still in flight. Flows are not cancellable;
// the gate releases when the running instance completes.
var ErrBusy = errors.New("operation already in progress")

// FlowError carries the single message a form should display for a failed
// submission attempt. The underlying cause remains available via Unwrap for
// errors.Is/errors.As checks.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string { return e.Message }
func (e *FlowError) Unwrap() error { return e.Err }

// AuthService orchestrates the multi-step authentication flows on top of
// the API gateway and the session store. Steps within one flow run
// strictly in sequence; distinct flows race freely.
type AuthService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger

	loginBusy    atomic.Bool
	registerBusy atomic.Bool
	profileBusy  atomic.Bool
	passwordBusy atomic.Bool
}

func NewAuthService(client api.Client, store *session.Store, log logging.Logger) *AuthService {
	return &AuthService{client: client, store: store, log: log}
}

// rawMessage extracts the most specific message an error offers.
func rawMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// serverMessage returns the server-supplied message, or fallback when the
// failure carried none.
func serverMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Login runs the login flow: exchange credentials, establish the session
// with a placeholder profile, then reconcile with the authoritative
// profile.
//
// The session becomes authenticated as soon as the credential exchange
// succeeds, before the profile fetch; a failed profile fetch is tolerated
// silently and the placeholder (ID 0) stays until the next refresh. The
// returned user is whichever profile the session ended up with.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if !s.loginBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.loginBusy.Store(false)

	return s.doLogin(ctx, username, password)
}

func (s *AuthService) doLogin(ctx context.Context, username, password string) (*models.User, error) {
	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, &FlowError{Message: MsgInvalidCredentials, Err: err}
		}
		return nil, &FlowError{Message: rawMessage(err, MsgLoginFailed), Err: err}
	}

	placeholder := models.PlaceholderUser(username)
	if err := s.store.Login(ctx, token, placeholder); err != nil {
		return nil, &FlowError{Message: MsgLoginFailed, Err: err}
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		// Tolerated degraded state: navigation proceeds on the placeholder.
		s.log.Warn(ctx, "profile fetch after login failed, keeping placeholder", "error", err)
		return placeholder, nil
	}
	if err := s.store.Login(ctx, token, user); err != nil {
		s.log.Warn(ctx, "could not persist reconciled profile", "error", err)
		return placeholder, nil
	}
	return user, nil
}

// Register runs the register-then-login flow. After a successful
// registration the login flow is executed with the same credentials; if
// that inner credential exchange fails, the distinct "account created"
// message is surfaced so the user knows the account exists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if !s.registerBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.registerBusy.Store(false)

	if _, err := s.client.Register(ctx, username, password); err != nil {
		return nil, &FlowError{Message: serverMessage(err, MsgRegisterFailed), Err: err}
	}

	user, err := s.doLogin(ctx, username, password)
	if err != nil {
		return nil, &FlowError{Message: MsgAccountCreated, Err: err}
	}
	return user, nil
}

// UpdateProfile submits a partial profile edit, then re-fetches the
// authoritative profile and reconciles it into the session without
// touching the token.
func (s *AuthService) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error) {
	if !s.profileBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.profileBusy.Store(false)

	if _, err := s.client.UpdateProfile(ctx, update); err != nil {
		return nil, &FlowError{Message: rawMessage(err, "Could not save profile"), Err: err}
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, &FlowError{Message: rawMessage(err, "Could not reload profile"), Err: err}
	}
	if err := s.store.SetUser(ctx, user); err != nil {
		return nil, &FlowError{Message: "Could not save profile", Err: err}
	}
	return user, nil
}

// ChangePassword validates the new password locally, then submits the
// change. Validation failures never issue a network call.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	if !s.passwordBusy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.passwordBusy.Store(false)

	if newPassword != confirmPassword {
		return &FlowError{Message: MsgPasswordMismatch, Err: ErrPasswordMismatch}
	}
	if len(newPassword) < MinPasswordLength {
		return &FlowError{Message: MsgPasswordTooShort, Err: ErrPasswordTooShort}
	}

	if err := s.client.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		return &FlowError{Message: rawMessage(err, "Could not change password"), Err: err}
	}
	return nil
}

// RefreshSession re-fetches the authoritative profile on entry to an
// authenticated view and reconciles it into the session. Failures are
// swallowed here: the gateway's 401 hook already owns the consequence of
// an invalid token, and transient errors resolve on the next visit.
func (s *AuthService) RefreshSession(ctx context.Context) {
	if !s.store.IsAuthenticated() {
		return
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Debug(ctx, "session refresh failed", "error", err)
		return
	}
	if err := s.store.SetUser(ctx, user); err != nil {
		s.log.Warn(ctx, "could not persist refreshed profile", "error", err)
	}
}

// Logout clears the session. Safe to call when already logged out.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Logout(ctx)
}

// Close releases the underlying API client.
func (s *AuthService) Close() error {
	return s.client.Close()
}
