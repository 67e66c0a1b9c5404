package authorservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"blogsite/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewAuthorService(db *sql.DB, mb common.MessageProducer, secret []byte) *AuthorService {
	return &AuthorService{
		m:      newDBModel(db),
		mb:     mb,
		secret: secret,
	}
}

// RegisterAuthor creates a new author account and publishes an author.created event.
func (s *AuthorService) RegisterAuthor(ctx context.Context, name, email, password string) (*Author, error) {
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a := Author{
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := a.Password.set(a.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insertAuthor(ctx, &a)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email string
		Name  string
	}{
		Email: a.Email,
		Name:  a.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.AuthorCreatedKey, common.AuthorExchange)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// LoginAuthor checks the author's credentials and issues a signed bearer token
// carrying the author's id.
func (s *AuthorService) LoginAuthor(ctx context.Context, email, password string) (*string, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	author, err := s.m.getAuthorByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := author.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.issueToken(author.ID, TokenTTL)
	if err != nil {
		return nil, err
	}

	return &token, nil
}
