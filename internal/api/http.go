package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"predmarket-cli/internal/logging"
	"predmarket-cli/internal/models"
)

// HTTPClient is the concrete Client over the backend's REST API. The
// cross-cutting behaviors (bearer credential, request ids, the global 401
// hook) live in the composed transport, not in the endpoint methods.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL (including
// the /api/v1 prefix). tokens supplies the bearer credential for each
// request; onUnauthorized fires on every 401 response.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, onUnauthorized func(), log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(nil, tokens, onUnauthorized),
		},
		log: log,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// errorBody is the backend's error envelope. FastAPI-style validation
// errors put a list under "detail"; those decode to an empty message and
// fall back to a status-derived one.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return c.mapStatus(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response for %s %s: %w", method, path, err)
	}
	return nil
}

// mapStatus converts a non-2xx response into the package error taxonomy.
func (c *HTTPClient) mapStatus(status int, raw []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrServer, status)
	default:
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{Status: status, Message: eb.Detail}
	}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// Login performs the OAuth2 password-flow credential exchange and returns
// the access token. The token is opaque to the client.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/token",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var u models.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPatch, "/auth/profile", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	in := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{CurrentPassword: currentPassword, NewPassword: newPassword}

	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", in, nil)
}

func (c *HTTPClient) ListMarkets(ctx context.Context) ([]models.Market, error) {
	var resp struct {
		Markets []models.Market `json:"markets"`
		Total   int64           `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/markets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Markets, nil
}

func (c *HTTPClient) GetMarket(ctx context.Context, id int64) (*models.Market, error) {
	var m models.Market
	if err := c.doJSON(ctx, http.MethodGet, "/markets/"+strconv.FormatInt(id, 10), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) BuyShares(ctx context.Context, marketID, userID int64, outcome bool, amount float64) (*models.Trade, error) {
	in := struct {
		UserID  int64   `json:"user_id"`
		Amount  float64 `json:"amount"`
		Outcome bool    `json:"outcome"`
	}{UserID: userID, Amount: amount, Outcome: outcome}

	var tr models.Trade
	path := fmt.Sprintf("/markets/%d/buy", marketID)
	if err := c.doJSON(ctx, http.MethodPost, path, in, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
		Total int64         `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users/"+strconv.FormatInt(id, 10), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPatch, "/admin/users/"+strconv.FormatInt(id, 10), update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListAllMarkets(ctx context.Context) ([]models.Market, error) {
	var markets []models.Market
	if err := c.doJSON(ctx, http.MethodGet, "/admin/markets", nil, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

func (c *HTTPClient) CreateMarket(ctx context.Context, create MarketCreate) (*models.Market, error) {
	var m models.Market
	if err := c.doJSON(ctx, http.MethodPost, "/admin/markets", create, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) UpdateMarket(ctx context.Context, id int64, update MarketUpdate) (*models.Market, error) {
	var m models.Market
	if err := c.doJSON(ctx, http.MethodPatch, "/admin/markets/"+strconv.FormatInt(id, 10), update, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) DeleteMarket(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/markets/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) ResolveMarket(ctx context.Context, id int64, outcome bool, resolutionSource string) (*models.Market, error) {
	in := struct {
		Outcome          bool    `json:"outcome"`
		ResolutionSource *string `json:"resolution_source,omitempty"`
	}{Outcome: outcome}
	if resolutionSource != "" {
		in.ResolutionSource = &resolutionSource
	}

	var m models.Market
	path := fmt.Sprintf("/admin/markets/%d/resolve", id)
	if err := c.doJSON(ctx, http.MethodPost, path, in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := url.Values{}
	if filter.UserID != nil {
		q.Set("user_id", strconv.FormatInt(*filter.UserID, 10))
	}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
		Total        int64                `json:"total"`
	}
	path := "/admin/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Transactions, resp.Total, nil
}

func (c *HTTPClient) ListPositions(ctx context.Context, filter PositionFilter) ([]models.Position, int64, error) {
	q := url.Values{}
	if filter.UserID != nil {
		q.Set("user_id", strconv.FormatInt(*filter.UserID, 10))
	}
	if filter.MarketID != nil {
		q.Set("market_id", strconv.FormatInt(*filter.MarketID, 10))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	var resp struct {
		Positions []models.Position `json:"positions"`
		Total     int64             `json:"total"`
	}
	path := "/admin/positions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Positions, resp.Total, nil
}

func (c *HTTPClient) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
