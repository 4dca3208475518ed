package services

import (
	"context"
	"sync"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/models"
)

// fakeClient implements api.Client for service unit tests. Behavior is
// configured through the *Ret/*Err fields; Last* fields record arguments
// and per-method invocation counts are read via CallCount.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	LoginRet   string
	LoginErr   error
	LoginBlock chan struct{} // when non-nil, Login waits until closed

	RegisterRet *models.User
	RegisterErr error

	CurrentUserRet *models.User
	CurrentUserErr error

	UpdateProfileRet *models.User
	UpdateProfileErr error

	ChangePasswordErr error

	ListMarketsRet []models.Market
	ListMarketsErr error

	GetMarketRet *models.Market
	GetMarketErr error

	BuySharesRet *models.Trade
	BuySharesErr error

	ListUsersRet []models.User
	ListUsersErr error

	GetUserRet *models.User
	GetUserErr error

	UpdateUserRet *models.User
	UpdateUserErr error

	ListAllMarketsRet []models.Market
	ListAllMarketsErr error

	CreateMarketRet *models.Market
	CreateMarketErr error

	UpdateMarketRet *models.Market
	UpdateMarketErr error

	DeleteMarketErr error

	ResolveMarketRet *models.Market
	ResolveMarketErr error

	ListTransactionsRet   []models.Transaction
	ListTransactionsTotal int64
	ListTransactionsErr   error

	ListPositionsRet   []models.Position
	ListPositionsTotal int64
	ListPositionsErr   error

	AdminStatsRet *models.AdminStats
	AdminStatsErr error

	LastLoginUser     string
	LastLoginPassword string

	LastRegisterUser     string
	LastRegisterPassword string

	LastProfileUpdate api.ProfileUpdate

	LastCurrentPassword string
	LastNewPassword     string

	LastBuyMarketID int64
	LastBuyUserID   int64
	LastBuyOutcome  bool
	LastBuyAmount   float64

	LastTransactionFilter api.TransactionFilter
	LastPositionFilter    api.PositionFilter
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}}
}

func (f *fakeClient) inc(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

// CallCount reports how many times the named method has run.
func (f *fakeClient) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.inc("Login")
	f.LastLoginUser = username
	f.LastLoginPassword = password
	if f.LoginBlock != nil {
		<-f.LoginBlock
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	f.inc("Register")
	f.LastRegisterUser = username
	f.LastRegisterPassword = password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.inc("CurrentUser")
	return f.CurrentUserRet.Clone(), f.CurrentUserErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error) {
	f.inc("UpdateProfile")
	f.LastProfileUpdate = update
	return f.UpdateProfileRet.Clone(), f.UpdateProfileErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	f.inc("ChangePassword")
	f.LastCurrentPassword = currentPassword
	f.LastNewPassword = newPassword
	return f.ChangePasswordErr
}

func (f *fakeClient) ListMarkets(ctx context.Context) ([]models.Market, error) {
	f.inc("ListMarkets")
	return f.ListMarketsRet, f.ListMarketsErr
}

func (f *fakeClient) GetMarket(ctx context.Context, id int64) (*models.Market, error) {
	f.inc("GetMarket")
	return f.GetMarketRet, f.GetMarketErr
}

func (f *fakeClient) BuyShares(ctx context.Context, marketID, userID int64, outcome bool, amount float64) (*models.Trade, error) {
	f.inc("BuyShares")
	f.LastBuyMarketID = marketID
	f.LastBuyUserID = userID
	f.LastBuyOutcome = outcome
	f.LastBuyAmount = amount
	return f.BuySharesRet, f.BuySharesErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	f.inc("ListUsers")
	return f.ListUsersRet, f.ListUsersErr
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	f.inc("GetUser")
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, update api.UserUpdate) (*models.User, error) {
	f.inc("UpdateUser")
	return f.UpdateUserRet, f.UpdateUserErr
}

func (f *fakeClient) ListAllMarkets(ctx context.Context) ([]models.Market, error) {
	f.inc("ListAllMarkets")
	return f.ListAllMarketsRet, f.ListAllMarketsErr
}

func (f *fakeClient) CreateMarket(ctx context.Context, create api.MarketCreate) (*models.Market, error) {
	f.inc("CreateMarket")
	return f.CreateMarketRet, f.CreateMarketErr
}

func (f *fakeClient) UpdateMarket(ctx context.Context, id int64, update api.MarketUpdate) (*models.Market, error) {
	f.inc("UpdateMarket")
	return f.UpdateMarketRet, f.UpdateMarketErr
}

func (f *fakeClient) DeleteMarket(ctx context.Context, id int64) error {
	f.inc("DeleteMarket")
	return f.DeleteMarketErr
}

func (f *fakeClient) ResolveMarket(ctx context.Context, id int64, outcome bool, resolutionSource string) (*models.Market, error) {
	f.inc("ResolveMarket")
	return f.ResolveMarketRet, f.ResolveMarketErr
}

func (f *fakeClient) ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]models.Transaction, int64, error) {
	f.inc("ListTransactions")
	f.LastTransactionFilter = filter
	return f.ListTransactionsRet, f.ListTransactionsTotal, f.ListTransactionsErr
}

func (f *fakeClient) ListPositions(ctx context.Context, filter api.PositionFilter) ([]models.Position, int64, error) {
	f.inc("ListPositions")
	f.LastPositionFilter = filter
	return f.ListPositionsRet, f.ListPositionsTotal, f.ListPositionsErr
}

func (f *fakeClient) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	f.inc("AdminStats")
	return f.AdminStatsRet, f.AdminStatsErr
}

var _ api.Client = (*fakeClient)(nil)
