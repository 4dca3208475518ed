package services

import (
	"context"
	"errors"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/session"
)

// ErrNotAdmin is returned when an admin operation is attempted without a
// reconciled admin profile. An unreconciled placeholder counts as
// non-admin until the next session refresh.
var ErrNotAdmin = errors.New("admin privileges required")

// AdminService exposes the admin console operations: user, market,
// transaction and position management. Every call is gated on the locally
// known admin flag; the server enforces the real check as well.
type AdminService struct {
	client api.Client
	store  *session.Store
}

func NewAdminService(client api.Client, store *session.Store) *AdminService {
	return &AdminService{client: client, store: store}
}

func (s *AdminService) requireAdmin() error {
	u := s.store.CurrentUser()
	if u == nil || !u.IsAdmin {
		return ErrNotAdmin
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.ListUsers(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.GetUser(ctx, id)
}

// UpdateUser edits another user's balance or admin flag. The server
// rejects an admin revoking their own admin status; that error surfaces
// unchanged.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, update api.UserUpdate) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.UpdateUser(ctx, id, update)
}

// ListMarkets returns every market, resolved ones included.
func (s *AdminService) ListMarkets(ctx context.Context) ([]models.Market, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.ListAllMarkets(ctx)
}

func (s *AdminService) CreateMarket(ctx context.Context, create api.MarketCreate) (*models.Market, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.CreateMarket(ctx, create)
}

func (s *AdminService) UpdateMarket(ctx context.Context, id int64, update api.MarketUpdate) (*models.Market, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.UpdateMarket(ctx, id, update)
}

func (s *AdminService) DeleteMarket(ctx context.Context, id int64) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	return s.client.DeleteMarket(ctx, id)
}

func (s *AdminService) ResolveMarket(ctx context.Context, id int64, outcome bool, resolutionSource string) (*models.Market, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.ResolveMarket(ctx, id, outcome, resolutionSource)
}

func (s *AdminService) ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]models.Transaction, int64, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	return s.client.ListTransactions(ctx, filter)
}

func (s *AdminService) ListPositions(ctx context.Context, filter api.PositionFilter) ([]models.Position, int64, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	return s.client.ListPositions(ctx, filter)
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.AdminStats(ctx)
}
