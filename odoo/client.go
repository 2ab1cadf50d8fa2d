package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	//callTimeout is the per call ceiling; exceeding it is a transport
	//failure, not a retry trigger.
	callTimeout = 60 * time.Second

	sessionCookieName = "session_id"

	// session and generic endpoints exposed by the odoo mcp addon
	endpointAuthenticate = "/web/session/authenticate"
	endpointCapabilities = "/mcp/capabilities"
	endpointSearch       = "/mcp/search"
	endpointExecute      = "/mcp/execute"
)

// Client owns the authentication state against an Odoo backend and the low
// level JSON-RPC call primitive. Authentication mutates shared state and is
// serialized; established-session calls only read it and run in parallel.
type Client struct {
	config     *Config
	httpClient *http.Client

	mux       sync.RWMutex
	uid       *int
	sessionID string
	cookies   []*http.Cookie
}

type rpcRequest struct {
	Jsonrpc string                 `json:"jsonrpc"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params"`
	Id      string                 `json:"id"`
}

type rpcError struct {
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

// Authenticate establishes a session against the backend. It always starts
// from a clean slate: a prior session is never reused while authenticating,
// and on failure both uid and session credential end up empty.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.uid = nil
	c.sessionID = ""
	c.cookies = nil

	if c.config.APIKey != "" {
		return c.authenticateWithKey(ctx)
	}
	return c.authenticateWithLogin(ctx)
}

// authenticateWithKey validates the bearer key lazily with a capabilities
// probe; a returned user id proves the key.
func (c *Client) authenticateWithKey(ctx context.Context) error {
	result, err := c.post(ctx, endpointCapabilities, nil, nil)
	if err != nil {
		return &AuthenticationError{Err: err}
	}
	user, _ := result["user"].(map[string]interface{})
	uid, ok := asInt(user["id"])
	if !ok {
		return &AuthenticationError{Err: fmt.Errorf("capabilities response had no user id")}
	}
	c.uid = &uid
	return nil
}

// authenticateWithLogin issues the session-create call and captures the
// backend issued session cookie.
func (c *Client) authenticateWithLogin(ctx context.Context) error {
	params := map[string]interface{}{
		"db":       c.config.Database,
		"login":    c.config.Username,
		"password": c.config.Password,
	}
	data, err := json.Marshal(&rpcRequest{Jsonrpc: "2.0", Method: "call", Params: params, Id: uuid.New().String()})
	if err != nil {
		return &AuthenticationError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+endpointAuthenticate, bytes.NewReader(data))
	if err != nil {
		return &AuthenticationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &AuthenticationError{Err: &TransportError{Err: err}}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &AuthenticationError{Err: &TransportError{StatusCode: resp.StatusCode}}
	}
	response := &rpcResponse{}
	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		return &AuthenticationError{Err: fmt.Errorf("failed to decode session response: %w", err)}
	}
	if response.Error != nil {
		return &AuthenticationError{Err: &RemoteError{Message: response.Error.Message}}
	}
	result := map[string]interface{}{}
	if len(response.Result) > 0 {
		_ = json.Unmarshal(response.Result, &result)
	}
	uid, ok := asInt(result["uid"])
	if !ok {
		return &AuthenticationError{Err: fmt.Errorf("session response had no uid")}
	}
	c.uid = &uid
	c.cookies = resp.Cookies()
	for _, cookie := range c.cookies {
		if cookie.Name == sessionCookieName {
			c.sessionID = cookie.Value
		}
	}
	return nil
}

// Call invokes a backend endpoint with the shared session credential. It
// fails fast with ErrNotConnected before any network activity when no
// authenticated user is present. The uid gate and the cookie snapshot are
// taken under one lock so a concurrent re-authentication cannot tear them
// apart.
func (c *Client) Call(ctx context.Context, endpoint string, params map[string]interface{}) (map[string]interface{}, error) {
	c.mux.RLock()
	uid, cookies := c.uid, c.cookies
	c.mux.RUnlock()
	if uid == nil {
		return nil, ErrNotConnected
	}
	return c.post(ctx, endpoint, params, cookies)
}

// post serializes the JSON-RPC envelope, attaches the active credential and
// surfaces backend reported errors as RemoteError and network failures as
// TransportError.
func (c *Client) post(ctx context.Context, endpoint string, params map[string]interface{}, cookies []*http.Cookie) (map[string]interface{}, error) {
	request := &rpcRequest{Jsonrpc: "2.0", Method: "call", Params: c.contextualize(params), Id: uuid.New().String()}
	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}
	response := &rpcResponse{}
	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if response.Error != nil {
		message := response.Error.Message
		if message == "" {
			message = string(response.Error.Data)
		}
		return nil, &RemoteError{Message: message}
	}
	result := map[string]interface{}{}
	if len(response.Result) > 0 {
		if err = json.Unmarshal(response.Result, &result); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("failed to decode result: %w", err)}
		}
	}
	return result, nil
}

// contextualize copies params and injects the preferred locale so that the
// backend localizes labels consistently. The caller's mapping is not mutated.
func (c *Client) contextualize(params map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		result[k] = v
	}
	callContext := map[string]interface{}{}
	if prev, ok := result["context"].(map[string]interface{}); ok {
		for k, v := range prev {
			callContext[k] = v
		}
	}
	callContext["lang"] = c.config.PreferredLang
	result["context"] = callContext
	return result
}

// UID returns the authenticated user identifier, nil when not connected.
func (c *Client) UID() *int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.uid
}

// SessionID returns the backend issued session token, empty for the bearer
// strategy or when not connected.
func (c *Client) SessionID() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.sessionID
}

func asInt(value interface{}) (int, bool) {
	switch actual := value.(type) {
	case int:
		return actual, true
	case int64:
		return int(actual), true
	case float64:
		return int(actual), true
	case json.Number:
		i, err := actual.Int64()
		return int(i), err == nil
	}
	return 0, false
}

// New creates an odoo client with the supplied config.
func New(config *Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: callTimeout},
	}
}
