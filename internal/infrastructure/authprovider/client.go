// Package authprovider talks to a GoTrue-compatible identity API.
package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already registered")
	ErrUnavailable        = errors.New("auth provider unavailable")
	ErrRequestFailed      = errors.New("auth provider request failed")
)

type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// New builds a client for baseURL (the project URL; /auth/v1 is appended).
func New(baseURL, anonKey, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/auth/v1",
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type errorBody struct {
	Code        any    `json:"code"`
	ErrorCode   string `json:"error_code"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
	Description string `json:"error_description"`
}

func (e errorBody) text() string {
	for _, s := range []string{e.Msg, e.Message, e.Description, e.ErrorCode} {
		if s != "" {
			return s
		}
	}
	return ""
}

// do sends body as JSON and decodes the response into out. admin selects the
// service-role key; otherwise the anon key is used.
func (c *Client) do(ctx context.Context, method, path string, admin bool, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authprovider: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("authprovider: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	key := c.anonKey
	if admin {
		key = c.serviceKey
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("authprovider: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		msg := eb.text()
		switch {
		case resp.StatusCode == http.StatusBadRequest && eb.ErrorCode == "invalid_credentials",
			resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "invalid login"):
			return ErrInvalidCredentials
		case resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "already"):
			return ErrUserExists
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
		}
		if msg != "" {
			return fmt.Errorf("%w: HTTP %d - %s", ErrRequestFailed, resp.StatusCode, msg)
		}
		return fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("authprovider: decode response: %w", err)
	}
	return nil
}

// SignUp registers a public user with the anon key.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*User, error) {
	var raw struct {
		User
		Nested *User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/signup", false, map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}, &raw)
	if err != nil {
		return nil, err
	}
	// With autoconfirm on, the provider answers with a session wrapping the user.
	if raw.Nested != nil && raw.Nested.ID != "" {
		return raw.Nested, nil
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("%w: sign-up returned no user", ErrRequestFailed)
	}
	return &raw.User, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", false, map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", false, map[string]string{
		"refresh_token": refreshToken,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AdminCreateUser creates a confirmed identity with the service-role key.
func (c *Client) AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/admin/users", true, map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"user_metadata": metadata,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), true, nil, nil)
}
