// Package api is the HTTP client for the insurance chatbot backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"coverchat/internal/auth"
)

// Per-operation timeouts. Analysis runs a full plan comparison on the
// backend and takes the longest.
const (
	sessionTimeout  = 30 * time.Second
	chatTimeout     = 60 * time.Second
	analysisTimeout = 90 * time.Second
)

// Client issues authenticated requests to the backend. Every call is
// attempted exactly once; callers decide whether to retry.
type Client struct {
	http     *resty.Client
	tokens   auth.TokenSource
	audience string
	log      *zap.Logger
}

// DiscoveryResult is the backend's answer to one plan-discovery turn.
type DiscoveryResult struct {
	Response string
	Answers  map[string]any
	Complete bool
}

// PlanAnalysis is the recommendation produced for a completed profile.
type PlanAnalysis struct {
	Analysis           string `json:"analysis"`
	EligiblePlansCount int    `json:"eligible_plans_count"`
}

// New creates a client for the backend at baseURL. Tokens are minted per
// request with audience as the ID-token audience.
func New(baseURL, audience string, tokens auth.TokenSource, log *zap.Logger) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")

	return &Client{
		http:     httpClient,
		tokens:   tokens,
		audience: audience,
		log:      log,
	}
}

// request builds an authenticated request with the operation's deadline.
// The returned cancel func must be called once the response is consumed.
func (c *Client) request(ctx context.Context, op string, timeout time.Duration) (*resty.Request, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)

	token, err := c.tokens.IDToken(ctx, c.audience)
	if err != nil {
		cancel()
		return nil, nil, authError(op, err)
	}

	return c.http.R().SetContext(ctx).SetAuthToken(token), cancel, nil
}

// CreateSession asks the backend for a new conversation session and returns
// its identifier.
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	const op = "create session"

	req, cancel, err := c.request(ctx, op, sessionTimeout)
	if err != nil {
		return "", err
	}
	defer cancel()

	resp, err := req.Post("/session")
	if err != nil {
		return "", transportError(op, err)
	}
	if resp.IsError() {
		return "", statusError(op, resp.StatusCode(), resp.String())
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", decodeError(op, err)
	}
	if body.SessionID == "" {
		return "", missingFieldError(op, "session_id")
	}

	c.log.Debug("session created", zap.String("session_id", body.SessionID))
	return body.SessionID, nil
}

// SendChatMessage sends one turn of the individual Q&A conversation.
func (c *Client) SendChatMessage(ctx context.Context, sessionID, message string) (string, error) {
	const op = "chat"

	req, cancel, err := c.request(ctx, op, chatTimeout)
	if err != nil {
		return "", err
	}
	defer cancel()

	resp, err := req.
		SetBody(map[string]string{"message": message}).
		Post(fmt.Sprintf("/chat/%s", sessionID))
	if err != nil {
		return "", transportError(op, err)
	}
	if resp.IsError() {
		return "", statusError(op, resp.StatusCode(), resp.String())
	}

	var body struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", decodeError(op, err)
	}
	if body.Response == nil {
		return "", missingFieldError(op, "response")
	}

	return *body.Response, nil
}

// SendDiscoveryMessage sends one plan-discovery turn. The backend updates
// the business profile server-side and reports the latest snapshot along
// with whether it considers the profile complete.
func (c *Client) SendDiscoveryMessage(ctx context.Context, sessionID, message string) (DiscoveryResult, error) {
	const op = "plan discovery"

	req, cancel, err := c.request(ctx, op, chatTimeout)
	if err != nil {
		return DiscoveryResult{}, err
	}
	defer cancel()

	resp, err := req.
		SetBody(map[string]string{"message": message}).
		Post(fmt.Sprintf("/plan-discovery/%s", sessionID))
	if err != nil {
		return DiscoveryResult{}, transportError(op, err)
	}
	if resp.IsError() {
		return DiscoveryResult{}, statusError(op, resp.StatusCode(), resp.String())
	}

	var body struct {
		Response *string        `json:"response"`
		Answers  map[string]any `json:"plan_discovery_answers"`
		Complete bool           `json:"is_complete"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return DiscoveryResult{}, decodeError(op, err)
	}
	if body.Response == nil {
		return DiscoveryResult{}, missingFieldError(op, "response")
	}

	c.log.Debug("discovery turn",
		zap.String("session_id", sessionID),
		zap.Bool("is_complete", body.Complete))

	return DiscoveryResult{
		Response: *body.Response,
		Answers:  body.Answers,
		Complete: body.Complete,
	}, nil
}

// AnalyzePlans asks the backend for plan recommendations. A 4xx status
// means the profile is not complete yet and is reported as the distinct
// precondition failure rather than a generic error.
func (c *Client) AnalyzePlans(ctx context.Context, sessionID string) (PlanAnalysis, error) {
	const op = "analyze plans"

	req, cancel, err := c.request(ctx, op, analysisTimeout)
	if err != nil {
		return PlanAnalysis{}, err
	}
	defer cancel()

	resp, err := req.Post(fmt.Sprintf("/analyze-plans/%s", sessionID))
	if err != nil {
		return PlanAnalysis{}, transportError(op, err)
	}
	if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
		return PlanAnalysis{}, DiscoveryIncompleteError(op, resp.StatusCode())
	}
	if resp.IsError() {
		return PlanAnalysis{}, statusError(op, resp.StatusCode(), resp.String())
	}

	var body struct {
		Analysis           *string `json:"analysis"`
		EligiblePlansCount *int    `json:"eligible_plans_count"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return PlanAnalysis{}, decodeError(op, err)
	}
	if body.Analysis == nil {
		return PlanAnalysis{}, missingFieldError(op, "analysis")
	}
	if body.EligiblePlansCount == nil {
		return PlanAnalysis{}, missingFieldError(op, "eligible_plans_count")
	}

	return PlanAnalysis{
		Analysis:           *body.Analysis,
		EligiblePlansCount: *body.EligiblePlansCount,
	}, nil
}

// SessionInfo returns the backend's metadata for a session as-is.
func (c *Client) SessionInfo(ctx context.Context, sessionID string) (map[string]any, error) {
	const op = "session info"

	req, cancel, err := c.request(ctx, op, sessionTimeout)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := req.Get(fmt.Sprintf("/session/%s", sessionID))
	if err != nil {
		return nil, transportError(op, err)
	}
	if resp.IsError() {
		return nil, statusError(op, resp.StatusCode(), resp.String())
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, decodeError(op, err)
	}
	return body, nil
}
