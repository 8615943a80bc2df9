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
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/itradeops/itradectl/internal/models"
)

// HTTPClient talks JSON over HTTP to the backend, attaching the bearer token
// and a request id to every call and throttling through a client-side rate
// limiter.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	token   string
}

type Options struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RateLimitPerSec float64
	RateBurst       int
}

func NewHTTPClient(opts Options) *HTTPClient {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	return &HTTPClient{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: opts.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateBurst),
	}
}

// SetToken installs the bearer token used on subsequent requests. An empty
// token removes the Authorization header.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do performs one request. A nil body sends no payload; a nil out discards the
// response body. Transport failures map to ErrUnavailable, 401 to
// ErrUnauthorized, 403 to ErrForbidden; other non-2xx statuses surface the
// server's error text through RejectedError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode >= 400:
		return &RejectedError{Message: decodeErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeErrorMessage(r io.Reader) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// envelope is the {success,error} wrapper most mutating endpoints use even on
// HTTP 200.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e envelope) check() error {
	if e.Success {
		return nil
	}
	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	return &RejectedError{Message: msg}
}

// --- auth ---

type authResponse struct {
	envelope
	Token    string          `json:"token"`
	Employee models.Employee `json:"employee"`
}

func (c *HTTPClient) Login(ctx context.Context, login, password, pinCode string) (string, models.Employee, error) {
	body := map[string]string{"login": login, "password": password, "pinCode": pinCode}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", models.Employee{}, err
	}
	if err := resp.check(); err != nil {
		return "", models.Employee{}, err
	}
	c.token = resp.Token
	return resp.Token, resp.Employee, nil
}

func (c *HTTPClient) Register(ctx context.Context, login, password, pinCode string, role models.Role) (string, models.Employee, error) {
	body := map[string]string{"login": login, "password": password, "pinCode": pinCode, "role": string(role)}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return "", models.Employee{}, err
	}
	if err := resp.check(); err != nil {
		return "", models.Employee{}, err
	}
	c.token = resp.Token
	return resp.Token, resp.Employee, nil
}

func (c *HTTPClient) Verify(ctx context.Context) (models.Employee, error) {
	var resp struct {
		envelope
		Employee models.Employee `json:"employee"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return models.Employee{}, err
	}
	if !resp.Success {
		// The verify endpoint answers 200 with success=false for a token it
		// does not recognize; treat it the same as a 401.
		return models.Employee{}, ErrUnauthorized
	}
	return resp.Employee, nil
}

// --- accounts & trading ---

func (c *HTTPClient) Balances(ctx context.Context) ([]models.AccountSnapshot, error) {
	var snapshots []models.AccountSnapshot
	if err := c.do(ctx, http.MethodGet, "/api/bybit-balances", nil, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (c *HTTPClient) UserBalance(ctx context.Context, email string) (models.AccountSnapshot, error) {
	var snapshot models.AccountSnapshot
	path := "/api/bybit-user-balance/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &snapshot); err != nil {
		return models.AccountSnapshot{}, err
	}
	return snapshot, nil
}

// rawDeal is the exchange fill record as forwarded by the backend; execTime is
// a millisecond epoch carried as a string.
type rawDeal struct {
	ExecTime  string `json:"execTime"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	ExecPrice string `json:"execPrice"`
	ExecQty   string `json:"execQty"`
}

func (c *HTTPClient) Deals(ctx context.Context, email string) ([]models.Deal, error) {
	var raw []rawDeal
	path := "/api/bybit-deals?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	deals := make([]models.Deal, 0, len(raw))
	for _, d := range raw {
		deal := models.Deal{Symbol: d.Symbol, Side: d.Side, Price: d.ExecPrice, Qty: d.ExecQty}
		if ms, err := strconv.ParseInt(d.ExecTime, 10, 64); err == nil {
			deal.Time = time.UnixMilli(ms)
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (c *HTTPClient) PlaceBuyOrder(ctx context.Context, order BuyOrder) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/bybit-buy-order", order, &resp); err != nil {
		return err
	}
	return resp.check()
}

func (c *HTTPClient) PlaceSellOffset(ctx context.Context, order SellOffset) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/sell-offset", order, &resp); err != nil {
		return err
	}
	return resp.check()
}

func (c *HTTPClient) CancelOrder(ctx context.Context, email, orderID, symbol string) error {
	body := map[string]string{"email": email, "orderId": orderID, "symbol": symbol}
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/bybit-cancel-order", body, &resp); err != nil {
		return err
	}
	return resp.check()
}

func (c *HTTPClient) CancelAllBySymbol(ctx context.Context, email, symbol string) error {
	body := map[string]string{"email": email, "symbol": symbol}
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/bybit-cancel-all", body, &resp); err != nil {
		return err
	}
	return resp.check()
}

// --- moderation queues ---

func (c *HTTPClient) PendingTransactions(ctx context.Context) ([]models.Transaction, error) {
	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/pending-transactions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *HTTPClient) ConfirmTransaction(ctx context.Context, transactionID string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/admin/confirm-transaction",
		map[string]string{"transactionId": transactionID}, &resp); err != nil {
		return err
	}
	return resp.check()
}

func (c *HTTPClient) RejectTransaction(ctx context.Context, transactionID string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/admin/reject-transaction",
		map[string]string{"transactionId": transactionID}, &resp); err != nil {
		return err
	}
	return resp.check()
}

func (c *HTTPClient) PendingRewards(ctx context.Context) ([]models.Reward, error) {
	var resp struct {
		Rewards []models.Reward `json:"rewards"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/pending-rewards", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rewards, nil
}

func (c *HTTPClient) MarkRewardPaid(ctx context.Context, rewardID string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/admin/mark-reward-paid",
		map[string]string{"rewardId": rewardID}, &resp); err != nil {
		return err
	}
	return resp.check()
}

// --- employee administration ---

func (c *HTTPClient) Employees(ctx context.Context) ([]models.Employee, error) {
	var resp struct {
		envelope
		Employees []models.Employee `json:"employees"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/employees", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Employees, nil
}

type employeeResponse struct {
	envelope
	Employee models.Employee `json:"employee"`
}

func (c *HTTPClient) SetEmployeeRole(ctx context.Context, employeeID string, role models.Role) (models.Employee, error) {
	var resp employeeResponse
	path := "/api/admin/employees/" + url.PathEscape(employeeID) + "/role"
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"role": string(role)}, &resp); err != nil {
		return models.Employee{}, err
	}
	if err := resp.check(); err != nil {
		return models.Employee{}, err
	}
	return resp.Employee, nil
}

func (c *HTTPClient) ToggleEmployeeStatus(ctx context.Context, employeeID string) (models.Employee, error) {
	var resp employeeResponse
	path := "/api/admin/employees/" + url.PathEscape(employeeID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return models.Employee{}, err
	}
	if err := resp.check(); err != nil {
		return models.Employee{}, err
	}
	return resp.Employee, nil
}

// --- trading bot ---

type botSettingsResponse struct {
	envelope
	Settings models.BotSettings `json:"settings"`
}

func (c *HTTPClient) BotSettings(ctx context.Context) (models.BotSettings, error) {
	var resp botSettingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/trading-bot/settings", nil, &resp); err != nil {
		return models.BotSettings{}, err
	}
	if err := resp.check(); err != nil {
		return models.BotSettings{}, err
	}
	return resp.Settings, nil
}

func (c *HTTPClient) UpdateBotSettings(ctx context.Context, settings models.BotSettings) (models.BotSettings, error) {
	var resp botSettingsResponse
	if err := c.do(ctx, http.MethodPut, "/api/admin/trading-bot/settings", settings, &resp); err != nil {
		return models.BotSettings{}, err
	}
	if err := resp.check(); err != nil {
		return models.BotSettings{}, err
	}
	return resp.Settings, nil
}

func (c *HTTPClient) SetBotStatus(ctx context.Context, statusWork string) (string, error) {
	var resp envelope
	body := map[string]string{"statusWork": statusWork}
	if err := c.do(ctx, http.MethodPut, "/api/admin/trading-bot/status", body, &resp); err != nil {
		return "", err
	}
	if err := resp.check(); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// --- telegram broadcast ---

func (c *HTTPClient) TelegramStats(ctx context.Context) (models.TelegramStats, error) {
	var resp struct {
		envelope
		Stats models.TelegramStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/telegram/users", nil, &resp); err != nil {
		return models.TelegramStats{}, err
	}
	if err := resp.check(); err != nil {
		return models.TelegramStats{}, err
	}
	return resp.Stats, nil
}

func (c *HTTPClient) SendBroadcast(ctx context.Context, message string, targetGroups []string) (models.BroadcastResult, error) {
	body := map[string]any{"message": message, "targetGroups": targetGroups}
	var resp struct {
		envelope
		Results models.BroadcastOutcome `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/telegram/send", body, &resp); err != nil {
		return models.BroadcastResult{}, err
	}
	if err := resp.check(); err != nil {
		return models.BroadcastResult{}, err
	}
	return models.BroadcastResult{Message: resp.Message, Results: resp.Results}, nil
}

// --- metrics ---

func (c *HTTPClient) Metrics(ctx context.Context) (models.Metrics, error) {
	var resp struct {
		Metrics models.Metrics `json:"metrics"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/metrics", nil, &resp); err != nil {
		return models.Metrics{}, err
	}
	return resp.Metrics, nil
}

func (c *HTTPClient) MetricsHistory(ctx context.Context, limit int) ([]models.MetricsPoint, error) {
	var resp struct {
		History []models.MetricsPoint `json:"history"`
	}
	path := "/api/admin/metrics/history?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// --- price predictor ---

// PredictPrice asks the backend for the close-price distribution of one
// trading pair over the last limit candles. The response body is the
// prediction itself, not an envelope.
func (c *HTTPClient) PredictPrice(ctx context.Context, symbol, interval string, limit int) (models.PricePrediction, error) {
	body := map[string]any{"symbol": symbol, "interval": interval, "limit": limit}
	var prediction models.PricePrediction
	if err := c.do(ctx, http.MethodPost, "/api/predict-price-prob", body, &prediction); err != nil {
		return models.PricePrediction{}, err
	}
	return prediction, nil
}
