package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	// Initially no identity
	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := &Identity{
		UserID:    "user-1",
		Role:      "User",
		IssuedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC),
	}
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, expected.UserID, id.UserID)
	assert.Equal(t, expected.Role, id.Role)
	assert.Equal(t, expected.IssuedAt, id.IssuedAt)
	assert.Equal(t, expected.ExpiresAt, id.ExpiresAt)
}

func TestWithRemoteIP(t *testing.T) {
	ip := net.ParseIP("192.0.2.7")

	id := (&Identity{UserID: "user-1"}).WithRemoteIP(ip)

	assert.Equal(t, ip, id.RemoteIP)
}
