package services

import (
	"context"

	"predmarket-cli/internal/api"
	"predmarket-cli/internal/models"
	"predmarket-cli/internal/session"
)

// MarketService exposes the market browsing and trading operations.
type MarketService struct {
	client api.Client
	store  *session.Store
}

func NewMarketService(client api.Client, store *session.Store) *MarketService {
	return &MarketService{client: client, store: store}
}

// List returns the active markets with their current probabilities.
func (s *MarketService) List(ctx context.Context) ([]models.Market, error) {
	return s.client.ListMarkets(ctx)
}

// Get returns one market by id.
func (s *MarketService) Get(ctx context.Context, id int64) (*models.Market, error) {
	return s.client.GetMarket(ctx, id)
}

// Buy purchases shares in a market for the current user. The server owns
// all pricing; the returned trade carries the authoritative numbers.
func (s *MarketService) Buy(ctx context.Context, marketID int64, outcome bool, amount float64) (*models.Trade, error) {
	var userID int64
	if u := s.store.CurrentUser(); u != nil {
		userID = u.ID
	}
	return s.client.BuyShares(ctx, marketID, userID, outcome, amount)
}

// EstimateShares is the rough client-side preview shown before a buy is
// confirmed: amount divided by the current probability of the chosen
// outcome. The server's execution price will differ because the trade
// itself moves the pools.
func EstimateShares(m *models.Market, outcome bool, amount float64) float64 {
	prob := m.ProbYes
	if !outcome {
		prob = m.ProbNo
	}
	if prob <= 0 {
		return 0
	}
	return amount / prob
}
