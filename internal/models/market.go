package models

import "time"

// Market is a prediction market as returned by the backend, including the
// probabilities the server derives from the YES/NO liquidity pools.
type Market struct {
	ID               int64     `json:"id"`
	Question         string    `json:"question"`
	Description      string    `json:"description"`
	EndDate          time.Time `json:"end_date"`
	PoolYes          float64   `json:"pool_yes"`
	PoolNo           float64   `json:"pool_no"`
	IsResolved       bool      `json:"is_resolved"`
	Outcome          *bool     `json:"outcome"`
	ResolutionSource *string   `json:"resolution_source"`
	ProbYes          float64   `json:"prob_yes"`
	ProbNo           float64   `json:"prob_no"`
}

// Trade is the server's record of an executed buy. All pricing numbers are
// computed server-side; the client only displays them.
type Trade struct {
	MarketID       int64   `json:"market_id"`
	UserID         int64   `json:"user_id"`
	Outcome        bool    `json:"outcome"`
	AmountSpent    float64 `json:"amount_spent"`
	SharesReceived float64 `json:"shares_received"`
	EffectivePrice float64 `json:"effective_price"`
	NewProbYes     float64 `json:"new_prob_yes"`
	NewProbNo      float64 `json:"new_prob_no"`
}

// Transaction is an admin-facing ledger entry.
type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Position is an admin-facing view of a user's shares in one market.
type Position struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	MarketID       int64   `json:"market_id"`
	Username       string  `json:"username"`
	MarketQuestion string  `json:"market_question"`
	SharesYes      float64 `json:"shares_yes"`
	SharesNo       float64 `json:"shares_no"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers         int64         `json:"total_users"`
	TotalMarkets       int64         `json:"total_markets"`
	ActiveMarkets      int64         `json:"active_markets"`
	ResolvedMarkets    int64         `json:"resolved_markets"`
	TotalTransactions  int64         `json:"total_transactions"`
	TotalVolume        float64       `json:"total_volume"`
	TotalPositions     int64         `json:"total_positions"`
	RecentTransactions []Transaction `json:"recent_transactions"`
}
