package authorservice

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogsite/internal/common"
)

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}

func setupTestEnvironment(t *testing.T) (*AuthorService, *sql.DB, *MockMessageProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)

	mb := new(MockMessageProducer)
	mb.On("Publish", mock.Anything, mock.Anything, common.AuthorCreatedKey, common.AuthorExchange).Return(nil)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM authors")
		return err
	}

	return NewAuthorService(db, mb, []byte("test-secret")), db, mb, cleanup
}

func TestRegisterAuthor(t *testing.T) {
	s, db, mb, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		authorName  string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:        "valid author",
			authorName:  "John Doe",
			email:       "john@example.com",
			password:    "Password1",
			expectedErr: nil,
		},
		{
			name:        "empty name",
			authorName:  "",
			email:       "john@example.com",
			password:    "Password1",
			expectedErr: common.ValidationError{Errors: map[string]string{"name": "must be provided"}},
		},
		{
			name:        "invalid email",
			authorName:  "John Doe",
			email:       "not-an-email",
			password:    "Password1",
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}},
		},
		{
			name:        "weak password",
			authorName:  "John Doe",
			email:       "john@example.com",
			password:    "password",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, and one number"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			author, err := s.RegisterAuthor(ctx, tc.authorName, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotEqual(t, "", author.ID.String())

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM authors").Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)

				mb.AssertCalled(t, "Publish", mock.Anything, mock.Anything, common.AuthorCreatedKey, common.AuthorExchange)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestRegisterAuthorDuplicateEmail(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	_, err := s.RegisterAuthor(ctx, "John Doe", "john@example.com", "Password1")
	assert.NoError(t, err)

	_, err = s.RegisterAuthor(ctx, "Jane Doe", "john@example.com", "Password2")
	assert.Equal(t, ErrDuplicateEmail, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestLoginAuthor(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)

	ctx := context.Background()

	author, err := s.RegisterAuthor(ctx, "John Doe", "john@example.com", "Password1")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:        "valid credentials",
			email:       "john@example.com",
			password:    "Password1",
			expectedErr: nil,
		},
		{
			name:        "wrong password",
			email:       "john@example.com",
			password:    "Wrong1234",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "Password1",
			expectedErr: ErrAuthenticationFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := s.LoginAuthor(ctx, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				id, err := s.VerifyToken(*token)
				assert.NoError(t, err)
				assert.Equal(t, author.ID, id)
			}
		})
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}
