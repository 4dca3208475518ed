package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/config"
	"predmarket-cli/internal/logging"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/services"
	"predmarket-cli/internal/session"

	_ "modernc.org/sqlite"
)

// AuthService is the slice of the auth flows the CLI needs.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error
	RefreshSession(ctx context.Context)
	Logout(ctx context.Context) error
	Close() error
}

// MarketService is the slice of the market operations the CLI needs.
type MarketService interface {
	List(ctx context.Context) ([]models.Market, error)
	Get(ctx context.Context, id int64) (*models.Market, error)
	Buy(ctx context.Context, marketID int64, outcome bool, amount float64) (*models.Trade, error)
}

// AdminService is the slice of the admin console the CLI needs.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, update api.UserUpdate) (*models.User, error)
	ListMarkets(ctx context.Context) ([]models.Market, error)
	CreateMarket(ctx context.Context, create api.MarketCreate) (*models.Market, error)
	UpdateMarket(ctx context.Context, id int64, update api.MarketUpdate) (*models.Market, error)
	DeleteMarket(ctx context.Context, id int64) error
	ResolveMarket(ctx context.Context, id int64, outcome bool, resolutionSource string) (*models.Market, error)
	ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]models.Transaction, int64, error)
	ListPositions(ctx context.Context, filter api.PositionFilter) ([]models.Position, int64, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
}

type App struct {
	config  *config.Config
	auth    AuthService
	markets MarketService
	admin   AdminService
	store   *session.Store
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := session.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	store := session.NewStore(db, logger)
	store.Initialize(ctx)

	// The 401 hook forces a local logout regardless of which request
	// tripped it. The store treats logout as idempotent.
	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store.Token, func() {
		_ = store.Logout(context.Background())
	}, logger)

	as := services.NewAuthService(apiClient, store, logger)
	ms := services.NewMarketService(apiClient, store)
	ads := services.NewAdminService(apiClient, store)

	return &App{
		config:  c,
		auth:    as,
		markets: ms,
		admin:   ads,
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.auth.Close() }()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	u := a.store.CurrentUser()
	return u != nil && u.IsAdmin
}
