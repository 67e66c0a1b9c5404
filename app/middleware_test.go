package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"blogsite/internal/blogservice"
)

func strptr(s string) *string {
	return &s
}

func TestRecoverPanic(t *testing.T) {
	app := &application{
		config: &Config{},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestEnableCORS(t *testing.T) {
	app := &application{
		config: &Config{
			TrustedOrigins: []string{"http://example.com"},
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.enableCORS(handler)

	tests := []struct {
		name                       string
		origin                     string
		method                     string
		accessControlRequestMethod *string
		wantedAllowOrigin          string
	}{
		{
			name:              "trusted origin",
			origin:            "http://example.com",
			method:            http.MethodGet,
			wantedAllowOrigin: "http://example.com",
		},
		{
			name:                       "trusted origin preflight",
			origin:                     "http://example.com",
			method:                     http.MethodOptions,
			accessControlRequestMethod: strptr(http.MethodPut),
			wantedAllowOrigin:          "http://example.com",
		},
		{
			name:   "untrusted origin",
			origin: "http://invalid.com",
			method: http.MethodGet,
		},
		{
			name:   "no origin header",
			method: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.accessControlRequestMethod != nil {
				req.Header.Set("Access-Control-Request-Method", *tt.accessControlRequestMethod)
			}

			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, http.StatusOK, res.Code)
			assert.Equal(t, tt.wantedAllowOrigin, res.Header().Get("Access-Control-Allow-Origin"))

			if tt.accessControlRequestMethod != nil {
				assert.NotEmpty(t, res.Header().Get("Access-Control-Allow-Methods"))
				assert.Contains(t, res.Header().Get("Access-Control-Allow-Headers"), "x-api-key")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	app, _ := newTestApplication(t)

	ctx := context.Background()

	author, err := app.authorService.RegisterAuthor(ctx, "Test Author", "testauthor@example.com", "Test1234")
	assert.NoError(t, err)

	token, err := app.authorService.LoginAuthor(ctx, "testauthor@example.com", "Test1234")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		token        *string
		wantedStatus int
		wantedAuthor uuid.UUID
	}{
		{
			name:         "no token is anonymous",
			token:        nil,
			wantedStatus: http.StatusOK,
			wantedAuthor: AnonymousAuthor,
		},
		{
			name:         "valid token",
			token:        token,
			wantedStatus: http.StatusOK,
			wantedAuthor: author.ID,
		},
		{
			name:         "garbage token",
			token:        strptr("not.a.jwt"),
			wantedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuthor uuid.UUID
			handler := app.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuthor = app.getAuthorContext(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != nil {
				req.Header.Set("x-api-key", *tt.token)
			}
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			assert.Equal(t, tt.wantedStatus, res.Code)
			if tt.wantedStatus == http.StatusOK {
				assert.Equal(t, tt.wantedAuthor, gotAuthor)
			}
		})
	}
}

func TestRequireAuthAuthor(t *testing.T) {
	app := &application{
		config: &Config{},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	handler := app.requireAuthAuthor(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous author", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = app.createAuthorContext(req, AnonymousAuthor)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("authenticated author", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = app.createAuthorContext(req, uuid.New())
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
	})
}

func TestRequireBlogOwner(t *testing.T) {
	app, _ := newTestApplication(t)

	ctx := context.Background()

	owner, err := app.authorService.RegisterAuthor(ctx, "Blog Owner", "owner@example.com", "Test1234")
	assert.NoError(t, err)

	other, err := app.authorService.RegisterAuthor(ctx, "Other Author", "other@example.com", "Test1234")
	assert.NoError(t, err)

	blog, err := app.blogService.CreateBlog(ctx, owner.ID, &blogservice.CreateBlogRequest{
		AuthorID: owner.ID.String(),
		Title:    "Test Blog",
		Body:     "test body",
		Category: "tech",
	})
	assert.NoError(t, err)

	router := httprouter.New()
	router.HandlerFunc(http.MethodPut, "/updateblog/:blogId", app.requireBlogOwner(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		blogID       string
		caller       uuid.UUID
		wantedStatus int
	}{
		{
			name:         "owner is allowed",
			blogID:       blog.ID.String(),
			caller:       owner.ID,
			wantedStatus: http.StatusOK,
		},
		{
			name:         "non owner is forbidden",
			blogID:       blog.ID.String(),
			caller:       other.ID,
			wantedStatus: http.StatusForbidden,
		},
		{
			name:         "anonymous caller",
			blogID:       blog.ID.String(),
			caller:       AnonymousAuthor,
			wantedStatus: http.StatusUnauthorized,
		},
		{
			name:         "unknown blog",
			blogID:       uuid.New().String(),
			caller:       owner.ID,
			wantedStatus: http.StatusNotFound,
		},
		{
			name:         "malformed blog id",
			blogID:       "not-a-uuid",
			caller:       owner.ID,
			wantedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/updateblog/"+tt.blogID, nil)
			req = app.createAuthorContext(req, tt.caller)
			res := httptest.NewRecorder()

			router.ServeHTTP(res, req)

			assert.Equal(t, tt.wantedStatus, res.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := &application{
		config: &Config{
			RateLimitEnabled: true,
			RateLimitRPS:     2,
			RateLimitBurst:   4,
		},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	handler := app.rateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var limited bool
	for i := 0; i < 8; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		if res.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited, fmt.Sprintf("expected at least one request beyond the burst of %d to be limited", app.config.RateLimitBurst))

	t.Run("disabled limiter passes everything", func(t *testing.T) {
		app.config.RateLimitEnabled = false

		for i := 0; i < 8; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:12345"
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			assert.Equal(t, http.StatusOK, res.Code)
		}
	})
}
