package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultBaseURL = "http://localhost:5000"

type authMode int

const (
	// authNone sends no token; failures are AuthErrors (login, register).
	authNone authMode = iota
	// authOptional sends the token when present.
	authOptional
	// authRequired fails before any I/O when no token is stored.
	authRequired
)

// Client talks to the smart-home REST backend.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

// NewClient uses an http.Client without timeout; requests are bounded only by their context.
func NewClient(baseURL string, session *Session) *Client {
	return NewClientWithHTTPClient(baseURL, session, &http.Client{})
}

func NewClientWithHTTPClient(baseURL string, session *Session, hc *http.Client) *Client {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if session == nil {
		session = NewSession(nil)
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: baseURL, session: session, http: hc}
}

func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates by email or username and stores the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, authNone, true, &result); err != nil {
		return AuthResult{}, err
	}
	if result.Token != "" {
		c.session.SetToken(result.Token)
	}
	return result, nil
}

// Register creates an account and stores the issued token.
func (c *Client) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if strings.TrimSpace(name) != "" {
		body["name"] = name
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, authNone, true, &result); err != nil {
		return AuthResult{}, err
	}
	if result.Token != "" {
		c.session.SetToken(result.Token)
	}
	return result, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (Ack, error) {
	var ack Ack
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	err := c.do(ctx, http.MethodPost, "/api/auth/change-password", body, authRequired, false, &ack)
	return ack, err
}

// ResetPassword sets a new password for the account matching username and email.
func (c *Client) ResetPassword(ctx context.Context, username, email, newPassword string) (Ack, error) {
	var ack Ack
	body := map[string]string{"username": username, "email": email, "newPassword": newPassword}
	err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, authNone, false, &ack)
	return ack, err
}

// DeleteAccount deletes the signed-in account and clears the token on success.
func (c *Client) DeleteAccount(ctx context.Context) (Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodDelete, "/api/auth/delete-account", nil, authRequired, false, &ack); err != nil {
		return Ack{}, err
	}
	c.session.Clear()
	return ack, nil
}

// Logout forgets the token. The backend keeps no session state.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) GetDevices(ctx context.Context) ([]DeviceRecord, error) {
	var records []DeviceRecord
	if err := c.do(ctx, http.MethodGet, "/api/devices", nil, authOptional, false, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateDevice(ctx context.Context, in DeviceInput) (DeviceRecord, error) {
	if err := in.validate(); err != nil {
		return DeviceRecord{}, err
	}
	var record DeviceRecord
	err := c.do(ctx, http.MethodPost, "/api/devices", in, authRequired, false, &record)
	return record, err
}

// ToggleDevice flips the power state server-side and returns the new record.
func (c *Client) ToggleDevice(ctx context.Context, id string) (DeviceRecord, error) {
	var record DeviceRecord
	err := c.do(ctx, http.MethodPost, "/api/devices/"+url.PathEscape(id)+"/toggle", nil, authRequired, false, &record)
	return record, err
}

func (c *Client) UpdateDevice(ctx context.Context, id string, in DeviceInput) (DeviceRecord, error) {
	if err := in.validate(); err != nil {
		return DeviceRecord{}, err
	}
	var record DeviceRecord
	err := c.do(ctx, http.MethodPut, "/api/devices/"+url.PathEscape(id), in, authRequired, false, &record)
	return record, err
}

func (c *Client) DeleteDevice(ctx context.Context, id string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodDelete, "/api/devices/"+url.PathEscape(id), nil, authRequired, false, &ack)
	return ack, err
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, authOptional, false, &dashboard)
	return dashboard, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, mode authMode, authCall bool, out any) error {
	token := c.session.Token()
	if mode == authRequired && token == "" {
		return errNotAuthenticated()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" && mode != authNone {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, errorMessage(raw), authCall)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &ServerError{Status: resp.StatusCode, Message: "invalid response body: " + err.Error()}
	}
	return nil
}

// errorMessage extracts {"error":"msg"} or {"error":{"message":"msg"}}.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &structured); err == nil {
		return strings.TrimSpace(structured.Message)
	}
	return ""
}
