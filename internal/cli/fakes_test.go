package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/logging"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/session"
)

var _ execIface = (*App)(nil)

// stubInputs replaces the interactive input seams with queues of canned
// answers. The returned func restores the originals.
func stubInputs(t *testing.T, texts []string, passwords []string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			t.Fatal("unexpected text prompt")
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			t.Fatal("unexpected password prompt")
		}
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func testStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  slot  TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	return session.NewStore(db, logging.NewTextLogger(io.Discard, slog.LevelError))
}

type fakeAuthSvc struct {
	loginUser *models.User
	loginErr  error
	regUser   *models.User
	regErr    error
	pwErr     error

	lastUsername string
	lastPassword string
	lastCurrent  string
	lastNew      string
	lastConfirm  string

	lastProfileUpdate api.ProfileUpdate

	refreshed int
	loggedOut bool
}

func (f *fakeAuthSvc) Login(_ context.Context, username, password string) (*models.User, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.loginUser, f.loginErr
}
func (f *fakeAuthSvc) Register(_ context.Context, username, password string) (*models.User, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.regUser, f.regErr
}
func (f *fakeAuthSvc) UpdateProfile(_ context.Context, update api.ProfileUpdate) (*models.User, error) {
	f.lastProfileUpdate = update
	return &models.User{ID: 1, Username: "alice"}, nil
}
func (f *fakeAuthSvc) ChangePassword(_ context.Context, current, newPw, confirm string) error {
	f.lastCurrent, f.lastNew, f.lastConfirm = current, newPw, confirm
	return f.pwErr
}
func (f *fakeAuthSvc) RefreshSession(context.Context) { f.refreshed++ }
func (f *fakeAuthSvc) Logout(context.Context) error {
	f.loggedOut = true
	return nil
}
func (f *fakeAuthSvc) Close() error { return nil }

type fakeMarketSvc struct {
	listRet []models.Market
	listErr error
	getRet  *models.Market
	getErr  error
	buyRet  *models.Trade
	buyErr  error

	lastBuyMarketID int64
	lastBuyOutcome  bool
	lastBuyAmount   float64
}

func (f *fakeMarketSvc) List(context.Context) ([]models.Market, error) {
	return f.listRet, f.listErr
}
func (f *fakeMarketSvc) Get(_ context.Context, id int64) (*models.Market, error) {
	return f.getRet, f.getErr
}
func (f *fakeMarketSvc) Buy(_ context.Context, marketID int64, outcome bool, amount float64) (*models.Trade, error) {
	f.lastBuyMarketID = marketID
	f.lastBuyOutcome = outcome
	f.lastBuyAmount = amount
	return f.buyRet, f.buyErr
}

type fakeAdminSvc struct {
	calls []string

	usersRet []models.User
	statsRet *models.AdminStats

	lastUserUpdate   api.UserUpdate
	lastMarketCreate api.MarketCreate
	lastTxFilter     api.TransactionFilter
}

func (f *fakeAdminSvc) ListUsers(context.Context) ([]models.User, error) {
	f.calls = append(f.calls, "ListUsers")
	return f.usersRet, nil
}
func (f *fakeAdminSvc) GetUser(_ context.Context, id int64) (*models.User, error) {
	f.calls = append(f.calls, "GetUser")
	return &models.User{ID: id, Username: "u"}, nil
}
func (f *fakeAdminSvc) UpdateUser(_ context.Context, id int64, update api.UserUpdate) (*models.User, error) {
	f.calls = append(f.calls, "UpdateUser")
	f.lastUserUpdate = update
	return &models.User{ID: id, Username: "u", IsAdmin: update.IsAdmin != nil && *update.IsAdmin}, nil
}
func (f *fakeAdminSvc) ListMarkets(context.Context) ([]models.Market, error) {
	f.calls = append(f.calls, "ListMarkets")
	return nil, nil
}
func (f *fakeAdminSvc) CreateMarket(_ context.Context, create api.MarketCreate) (*models.Market, error) {
	f.calls = append(f.calls, "CreateMarket")
	f.lastMarketCreate = create
	return &models.Market{ID: 10, Question: create.Question}, nil
}
func (f *fakeAdminSvc) UpdateMarket(_ context.Context, id int64, update api.MarketUpdate) (*models.Market, error) {
	f.calls = append(f.calls, "UpdateMarket")
	return &models.Market{ID: id}, nil
}
func (f *fakeAdminSvc) DeleteMarket(_ context.Context, id int64) error {
	f.calls = append(f.calls, "DeleteMarket")
	return nil
}
func (f *fakeAdminSvc) ResolveMarket(_ context.Context, id int64, outcome bool, source string) (*models.Market, error) {
	f.calls = append(f.calls, "ResolveMarket")
	return &models.Market{ID: id, IsResolved: true, Outcome: &outcome}, nil
}
func (f *fakeAdminSvc) ListTransactions(_ context.Context, filter api.TransactionFilter) ([]models.Transaction, int64, error) {
	f.calls = append(f.calls, "ListTransactions")
	f.lastTxFilter = filter
	return nil, 0, nil
}
func (f *fakeAdminSvc) ListPositions(_ context.Context, filter api.PositionFilter) ([]models.Position, int64, error) {
	f.calls = append(f.calls, "ListPositions")
	return nil, 0, nil
}
func (f *fakeAdminSvc) Stats(context.Context) (*models.AdminStats, error) {
	f.calls = append(f.calls, "Stats")
	if f.statsRet != nil {
		return f.statsRet, nil
	}
	return &models.AdminStats{}, nil
}
