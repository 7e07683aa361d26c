package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s staticTokenSource) IDToken(ctx context.Context, audience string) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.URL, staticTokenSource{token: "test-token"}, zap.NewNop())
}

func TestCreateSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/session", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"session_id":"abc123"}`))
	}))

	id, err := client.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestCreateSessionMissingField(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.CreateSession(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseDecode, apiErr.Cause)
	assert.Contains(t, apiErr.Message, "session_id")
}

func TestCreateSessionMalformedJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))

	_, err := client.CreateSession(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseDecode, apiErr.Cause)
}

func TestCreateSessionServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.CreateSession(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseStatus, apiErr.Cause)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestAuthFailureIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend when auth fails")
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, srv.URL, staticTokenSource{err: errors.New("metadata server unreachable")}, zap.NewNop())

	_, err := client.CreateSession(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseAuth, apiErr.Cause)
	assert.Contains(t, apiErr.Message, "authentication failed")
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := New(srv.URL, srv.URL, staticTokenSource{token: "test-token"}, zap.NewNop())

	_, err := client.CreateSession(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseTransport, apiErr.Cause)
}

func TestSendChatMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/abc123", r.URL.Path)
		w.Write([]byte(`{"response":"An HMO is..."}`))
	}))

	answer, err := client.SendChatMessage(context.Background(), "abc123", "What is an HMO?")
	require.NoError(t, err)
	assert.Equal(t, "An HMO is...", answer)
}

func TestSendDiscoveryMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plan-discovery/abc123", r.URL.Path)
		w.Write([]byte(`{"response":"Got it...","plan_discovery_answers":{"employees":12,"state":"CA"},"is_complete":false}`))
	}))

	result, err := client.SendDiscoveryMessage(context.Background(), "abc123", "We have 12 employees in California")
	require.NoError(t, err)
	assert.Equal(t, "Got it...", result.Response)
	assert.False(t, result.Complete)
	assert.Equal(t, map[string]any{"employees": float64(12), "state": "CA"}, result.Answers)
}

func TestSendDiscoveryMessageDefaultsOptionalFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"Tell me more."}`))
	}))

	result, err := client.SendDiscoveryMessage(context.Background(), "abc123", "hi")
	require.NoError(t, err)
	assert.Nil(t, result.Answers)
	assert.False(t, result.Complete)
}

func TestAnalyzePlans(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze-plans/abc123", r.URL.Path)
		w.Write([]byte(`{"analysis":"Plan A fits best.","eligible_plans_count":7}`))
	}))

	result, err := client.AnalyzePlans(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Plan A fits best.", result.Analysis)
	assert.Equal(t, 7, result.EligiblePlansCount)
}

func TestAnalyzePlansIncompleteProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"profile incomplete"}`, http.StatusBadRequest)
	}))

	_, err := client.AnalyzePlans(context.Background(), "abc123")
	require.True(t, IsDiscoveryIncomplete(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Plan discovery is not complete. Please complete your business profile first.", apiErr.Message)
}

func TestAnalyzePlansServerErrorIsGeneric(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.AnalyzePlans(context.Background(), "abc123")
	require.Error(t, err)
	assert.False(t, IsDiscoveryIncomplete(err))
}

func TestSessionInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/session/abc123", r.URL.Path)
		w.Write([]byte(`{"session_id":"abc123","message_count":4}`))
	}))

	info, err := client.SessionInfo(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", info["session_id"])
	assert.Equal(t, float64(4), info["message_count"])
}

func TestNoRetryOnFailure(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.CreateSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
