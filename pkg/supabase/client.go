// Package supabase is a minimal PostgREST client for the hosted document
// store and its auth endpoint. Entry collections are plain JSON arrays; the
// backend never relies on the store's real-time features.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type tokenKey struct{}

// WithToken returns a context carrying the user's JWT. Client calls made
// with that context run under row level security as the user instead of
// the service key.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by WithToken, or "" when the
// context is unauthenticated.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		URL:        baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// do executes a PostgREST request. When userToken is set it is used as the
// bearer token so row level security applies; otherwise the service key is
// used.
func (c *Client) do(method, table string, query map[string]any, payload any, userToken string, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := url.Values{}
		for key, value := range query {
			q.Add(key, fmt.Sprintf("%v", value))
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.ServiceKey)
	token := c.ServiceKey
	if userToken != "" {
		token = userToken
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(respBody))
	}

	return respBody, nil
}

// Query executes a query on a table. An empty userToken falls back to the
// service key.
func (c *Client) Query(table string, query map[string]any, userToken string) ([]byte, error) {
	return c.do(http.MethodGet, table, query, nil, userToken, "")
}

// Insert inserts one record or a batch into a table
func (c *Client) Insert(table string, data any, userToken string) ([]byte, error) {
	return c.do(http.MethodPost, table, nil, data, userToken, "return=representation")
}

// Update updates the record with the given id
func (c *Client) Update(table, id string, data any, userToken string) ([]byte, error) {
	query := map[string]any{"id": fmt.Sprintf("eq.%s", id)}
	return c.do(http.MethodPatch, table, query, data, userToken, "return=representation")
}

// Delete deletes the record with the given id
func (c *Client) Delete(table, id, userToken string) error {
	query := map[string]any{"id": fmt.Sprintf("eq.%s", id)}
	_, err := c.do(http.MethodDelete, table, query, nil, userToken, "")
	return err
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken verifies a JWT token with the Supabase auth endpoint
func (c *Client) VerifyToken(token string) (*User, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d)", resp.StatusCode)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
