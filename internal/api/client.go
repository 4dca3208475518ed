package api

import (
	"context"
	"time"

	"predmarket-cli/internal/models"
)

// ProfileUpdate is a partial profile edit; nil fields are left unchanged.
type ProfileUpdate struct {
	AvatarURL          *string `json:"avatar_url,omitempty"`
	Theme              *string `json:"theme,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

// UserUpdate is the admin edit of another user; nil fields are left unchanged.
type UserUpdate struct {
	Balance *float64 `json:"balance,omitempty"`
	IsAdmin *bool    `json:"is_admin,omitempty"`
}

// MarketCreate describes a new market.
type MarketCreate struct {
	Question    string    `json:"question"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
	InitialPool float64   `json:"initial_pool"`
}

// MarketUpdate is a partial market edit; nil fields are left unchanged.
type MarketUpdate struct {
	Question         *string    `json:"question,omitempty"`
	Description      *string    `json:"description,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ResolutionSource *string    `json:"resolution_source,omitempty"`
}

// TransactionFilter narrows and pages the admin transaction listing.
type TransactionFilter struct {
	UserID *int64
	Type   string
	Limit  int
	Offset int
}

// PositionFilter narrows and pages the admin position listing.
type PositionFilter struct {
	UserID   *int64
	MarketID *int64
	Limit    int
	Offset   int
}

// Client is the transport-agnostic contract to the prediction-market
// backend. The concrete implementation is HTTPClient; tests substitute
// fakes.
//
// Failures are reported via the package's error taxonomy: ErrUnavailable,
// ErrUnauthorized, ErrServer, or *APIError for other client errors.
type Client interface {
	Close() error

	// Auth.
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Markets.
	ListMarkets(ctx context.Context) ([]models.Market, error)
	GetMarket(ctx context.Context, id int64) (*models.Market, error)
	BuyShares(ctx context.Context, marketID, userID int64, outcome bool, amount float64) (*models.Trade, error)

	// Admin.
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*models.User, error)
	ListAllMarkets(ctx context.Context) ([]models.Market, error)
	CreateMarket(ctx context.Context, create MarketCreate) (*models.Market, error)
	UpdateMarket(ctx context.Context, id int64, update MarketUpdate) (*models.Market, error)
	DeleteMarket(ctx context.Context, id int64) error
	ResolveMarket(ctx context.Context, id int64, outcome bool, resolutionSource string) (*models.Market, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)
	ListPositions(ctx context.Context, filter PositionFilter) ([]models.Position, int64, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}
