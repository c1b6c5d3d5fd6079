package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
)

// TokenStore keeps per-user Spotify oauth2 tokens in Redis. Tokens are
// stored as JSON without expiry; the refresh token stays valid until the
// user unlinks the account.
type TokenStore interface {
	Save(ctx context.Context, userID string, token *oauth2.Token) error
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
	Update(ctx context.Context, userID string, newToken *oauth2.Token) error
	Delete(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID string) (bool, error)
}

type tokenStore struct {
	client *redis.Client
	prefix string
}

func NewTokenStore(client *redis.Client, prefix string) TokenStore {
	return &tokenStore{
		client: client,
		prefix: prefix,
	}
}

func (ts *tokenStore) key(userID string) string {
	return fmt.Sprintf("%s:%s", ts.prefix, userID)
}

func (ts *tokenStore) Save(ctx context.Context, userID string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := ts.client.Set(ctx, ts.key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

func (ts *tokenStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	result, err := ts.client.Get(ctx, ts.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(result), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

func (ts *tokenStore) Update(ctx context.Context, userID string, newToken *oauth2.Token) error {
	existing, err := ts.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get existing token: %w", err)
	}

	if existing == nil {
		return fmt.Errorf("token to update not found")
	}

	return ts.Save(ctx, userID, newToken)
}

func (ts *tokenStore) Delete(ctx context.Context, userID string) error {
	if err := ts.client.Del(ctx, ts.key(userID)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}

func (ts *tokenStore) Exists(ctx context.Context, userID string) (bool, error) {
	n, err := ts.client.Exists(ctx, ts.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}

	return n > 0, nil
}
