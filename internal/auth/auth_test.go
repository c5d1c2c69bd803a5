package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reup-focus-backend/internal/analytics"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(secret, 42)
	require.NoError(t, err)

	uid, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, 42, uid)
}

func TestParseToken_Rejects(t *testing.T) {
	good, err := GenerateToken(secret, 42)
	require.NoError(t, err)

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		_, err := ParseToken([]byte("other"), good)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}).SignedString(secret)
		require.NoError(t, err)

		_, err = ParseToken(secret, expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject a token without user_id", func(t *testing.T) {
		anon, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(secret)
		require.NoError(t, err)

		_, err = ParseToken(secret, anon)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := ParseToken(secret, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMiddleware_Wrap(t *testing.T) {
	var (
		gotUID       int
		gotAnalytics int
	)
	h := New(secret).Wrap(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = UserIDFromContext(r.Context())
		gotAnalytics, _ = analytics.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("Should reject a missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/focus/task", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing token")
	})

	t.Run("Should reject an invalid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/focus/task", nil)
		r.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		h(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("Should pass the user to the handler", func(t *testing.T) {
		token, err := GenerateToken(secret, 7)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/focus/task", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 7, gotUID)
		assert.Equal(t, 7, gotAnalytics)
	})
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	uid, ok := UserIDFromContext(WithUserID(context.Background(), 5))
	assert.True(t, ok)
	assert.Equal(t, 5, uid)
}
