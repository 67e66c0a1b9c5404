package authorservice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	s := &AuthorService{secret: []byte("test-secret")}
	authorID := uuid.New()

	token, err := s.issueToken(authorID, TokenTTL)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := s.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, authorID, got)
}

func TestVerifyToken(t *testing.T) {
	s := &AuthorService{secret: []byte("test-secret")}

	expired, err := s.issueToken(uuid.New(), -time.Minute)
	assert.NoError(t, err)

	other := &AuthorService{secret: []byte("other-secret")}
	foreign, err := other.issueToken(uuid.New(), TokenTTL)
	assert.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage token", token: "not-a-token"},
		{name: "empty token", token: ""},
		{name: "expired token", token: expired},
		{name: "wrong secret", token: foreign},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.VerifyToken(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, uuid.Nil, got)
		})
	}
}
