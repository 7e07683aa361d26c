// Package chatbot ties the backend client to the conversation state. It is
// the layer the UI talks to: every method reuses the active session, keeps
// the transcripts current and applies the flow transitions.
package chatbot

import (
	"context"

	"go.uber.org/zap"

	"coverchat/internal/api"
	"coverchat/internal/session"
)

// Backend is the subset of the API client the chatbot uses.
type Backend interface {
	CreateSession(ctx context.Context) (string, error)
	SendChatMessage(ctx context.Context, sessionID, message string) (string, error)
	SendDiscoveryMessage(ctx context.Context, sessionID, message string) (api.DiscoveryResult, error)
	AnalyzePlans(ctx context.Context, sessionID string) (api.PlanAnalysis, error)
	SessionInfo(ctx context.Context, sessionID string) (map[string]any, error)
}

type Chatbot struct {
	backend Backend
	state   *session.State
	log     *zap.Logger
}

func New(backend Backend, state *session.State, log *zap.Logger) *Chatbot {
	return &Chatbot{
		backend: backend,
		state:   state,
		log:     log,
	}
}

func (c *Chatbot) State() *session.State { return c.state }

// EnsureSession returns the active session id, creating one on the backend
// if none is active yet.
func (c *Chatbot) EnsureSession(ctx context.Context) (string, error) {
	if c.state.HasActiveSession() {
		return c.state.SessionID(), nil
	}
	id, err := c.backend.CreateSession(ctx)
	if err != nil {
		return "", err
	}
	c.state.Begin(id)
	return id, nil
}

// Chat sends one individual Q&A turn and records both sides of it in the
// individual transcript. The user turn is only recorded once the call
// succeeds, so a failed call leaves the transcript untouched.
func (c *Chatbot) Chat(ctx context.Context, message string) (string, error) {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return "", err
	}
	answer, err := c.backend.SendChatMessage(ctx, id, message)
	if err != nil {
		return "", err
	}
	c.state.AppendIndividual(session.RoleUser, message)
	c.state.AppendIndividual(session.RoleAssistant, answer)
	return answer, nil
}

// Discover sends one plan-discovery turn, records it in the business
// transcript and feeds the returned profile snapshot and completion flag
// into the flow state.
func (c *Chatbot) Discover(ctx context.Context, message string) (api.DiscoveryResult, error) {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return api.DiscoveryResult{}, err
	}
	result, err := c.backend.SendDiscoveryMessage(ctx, id, message)
	if err != nil {
		return api.DiscoveryResult{}, err
	}
	c.state.AppendBusiness(session.RoleUser, message)
	c.state.AppendBusiness(session.RoleAssistant, result.Response)
	c.state.ObserveDiscovery(result.Answers, result.Complete)

	if result.Complete {
		c.log.Info("business profile complete", zap.String("session_id", id))
	}
	return result, nil
}

// Recommendations fetches the plan analysis for the completed profile. When
// the locally tracked completion flag is false it fails before any network
// call is made. The result is not cached: every view re-fetches, so the
// analysis always reflects the backend's current view of the profile.
func (c *Chatbot) Recommendations(ctx context.Context) (api.PlanAnalysis, error) {
	if !c.state.ProfileComplete() {
		return api.PlanAnalysis{}, api.DiscoveryIncompleteError("analyze plans", 0)
	}
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return api.PlanAnalysis{}, err
	}
	return c.backend.AnalyzePlans(ctx, id)
}

// Status returns the backend's session metadata for the active session.
func (c *Chatbot) Status(ctx context.Context) (map[string]any, error) {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}
	return c.backend.SessionInfo(ctx, id)
}

// Reset forgets the session locally. The backend session is not deleted;
// the next call simply creates a fresh one.
func (c *Chatbot) Reset() {
	c.state.Reset()
}

func (c *Chatbot) HasActiveSession() bool { return c.state.HasActiveSession() }

func (c *Chatbot) ProfileComplete() bool { return c.state.ProfileComplete() }

func (c *Chatbot) Profile() map[string]any { return c.state.Profile() }
