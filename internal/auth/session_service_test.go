package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockfolio/internal/model"
)

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService("test-secret")
	user := &model.User{ID: 7, Username: "alice"}

	token, expiresAt, err := svc.Issue(user, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(SessionExpiry), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionService_RememberExtendsExpiry(t *testing.T) {
	svc := NewSessionService("test-secret")
	user := &model.User{ID: 7, Username: "alice"}

	_, short, err := svc.Issue(user, false)
	assert.NoError(t, err)
	_, long, err := svc.Issue(user, true)
	assert.NoError(t, err)

	assert.True(t, long.After(short.Add(24*time.Hour)))
}

func TestSessionService_RejectsForgedToken(t *testing.T) {
	svc := NewSessionService("test-secret")
	other := NewSessionService("different-secret")
	user := &model.User{ID: 7, Username: "alice"}

	token, _, err := other.Issue(user, false)
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)

	_, err = svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestSessionStore_FailSafeWithoutRedis(t *testing.T) {
	// a nil cache client degrades to "nothing is revoked"
	store := NewSessionStore(nil)

	assert.NoError(t, store.Revoke(context.Background(), "some-token-id", time.Hour))
	assert.False(t, store.IsRevoked(context.Background(), "some-token-id"))
}
