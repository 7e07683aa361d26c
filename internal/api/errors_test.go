package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := &Error{Op: "chat", Cause: CauseTransport, Message: "request failed: connection refused"}
	assert.Equal(t, "chat: request failed: connection refused", err.Error())

	err = &Error{Op: "analyze plans", Cause: CauseStatus, StatusCode: 502, Message: "backend returned an error"}
	assert.Equal(t, "analyze plans: backend returned an error (status 502)", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := transportError("chat", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsDiscoveryIncomplete(t *testing.T) {
	incomplete := &Error{Op: "analyze plans", Cause: CauseDiscoveryIncomplete, Message: "Plan discovery is not complete. Please complete your business profile first."}
	assert.True(t, IsDiscoveryIncomplete(incomplete))

	// Also recognized through wrapping.
	assert.True(t, IsDiscoveryIncomplete(fmt.Errorf("fetch failed: %w", incomplete)))

	assert.False(t, IsDiscoveryIncomplete(errors.New("plain error")))
	assert.False(t, IsDiscoveryIncomplete(&Error{Op: "chat", Cause: CauseStatus, StatusCode: 500, Message: "boom"}))
	assert.False(t, IsDiscoveryIncomplete(nil))
}
