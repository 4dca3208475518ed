// Package session implements the client's authentication state: the
// in-memory token and user profile, backed by two durable slots in the
// local SQLite database. The Store is the single writer of that state;
// every other component reads it through accessors.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"predmarket-cli/internal/dbx"
	"predmarket-cli/internal/logging"
	"predmarket-cli/internal/models"
	sessionrepo "predmarket-cli/internal/repositories/session"
)

// Store holds the process-wide session. A token and the current user are
// updated together with their durable slots, so readers never observe a
// half-written session.
//
// The invariant IsAuthenticated() == (token != "") holds after every
// mutator. The current user may be a placeholder (ID == 0) while the token
// is already set; that transient state is resolved by the next profile
// reconciliation.
type Store struct {
	mu          sync.Mutex
	db          *sql.DB
	log         logging.Logger
	token       string
	currentUser *models.User
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) repo(db dbx.DBTX) sessionrepo.Repository {
	return sessionrepo.NewSQLiteRepository(db)
}

// Initialize loads the persisted session at process start. It never fails:
// a missing slot, a read error, or an undecodable user slot all degrade to
// "absent". A token without a user is valid; the user stays nil until the
// next reconciliation.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repo(s.db)

	tok, err := repo.Get(ctx, sessionrepo.SlotToken)
	if err != nil {
		s.log.Warn(ctx, "could not read persisted token, starting unauthenticated", "error", err)
		return
	}
	if len(tok) == 0 {
		return
	}
	s.token = string(tok)

	raw, err := repo.Get(ctx, sessionrepo.SlotUser)
	if err != nil || len(raw) == 0 {
		if err != nil {
			s.log.Warn(ctx, "could not read persisted user", "error", err)
		}
		return
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "persisted user is corrupt, ignoring", "error", err)
		return
	}
	s.currentUser = &u
}

// Login overwrites the token and the current user and persists both slots
// in one transaction. No partial write is observable: on storage failure
// the in-memory session is left untouched and the error is returned.
//
// The token is opaque; any non-empty value is accepted.
func (s *Store) Login(ctx context.Context, token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, sessionrepo.SlotToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, sessionrepo.SlotUser, raw)
	})
	if err != nil {
		return err
	}

	s.token = token
	s.currentUser = user.Clone()
	return nil
}

// SetUser replaces only the current user, leaving the token untouched.
// Used for profile reconciliation.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.repo(s.db).Set(ctx, sessionrepo.SlotUser, raw); err != nil {
		return err
	}

	s.currentUser = user.Clone()
	return nil
}

// Logout clears the session and erases both durable slots. It is
// idempotent; calling it while already logged out is a no-op. The
// in-memory session is cleared even when the durable erase fails, so an
// authorization rejection always leaves the process unauthenticated.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.currentUser = nil

	return s.repo(s.db).Clear(ctx)
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the current user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser.Clone()
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}
