package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const authorContextKey = contextKey("author")

// AnonymousAuthor marks a request that carried no authentication token.
var AnonymousAuthor = uuid.Nil

func (app *application) createAuthorContext(r *http.Request, authorID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), authorContextKey, authorID)
	return r.WithContext(ctx)
}

func (app *application) getAuthorContext(r *http.Request) uuid.UUID {
	authorID, ok := r.Context().Value(authorContextKey).(uuid.UUID)
	if !ok {
		return AnonymousAuthor
	}
	return authorID
}
