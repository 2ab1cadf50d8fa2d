package odoo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeOdoo simulates the backend JSON-RPC surface: the session endpoint plus
// the generic mcp endpoints, with canned per-path responses.
type fakeOdoo struct {
	server   *httptest.Server
	hits     int32
	lastPath string
	lastAuth string
	lastSID  string
	last     map[string]interface{}
	results  map[string]interface{}
	rpcErr   map[string]string
	status   int
}

func newFakeOdoo() *fakeOdoo {
	f := &fakeOdoo{
		results: map[string]interface{}{},
		rpcErr:  map[string]string{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeOdoo) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.hits, 1)
	f.lastPath = r.URL.Path
	f.lastAuth = r.Header.Get("Authorization")
	f.lastSID = ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		f.lastSID = cookie.Value
	}
	request := &rpcRequest{}
	_ = json.NewDecoder(r.Body).Decode(request)
	f.last = request.Params

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	if message, ok := f.rpcErr[r.URL.Path]; ok {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"error":   map[string]interface{}{"code": 200, "message": message},
		})
		return
	}
	if r.URL.Path == endpointAuthenticate {
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "sid-1", Path: "/"})
	}
	result, ok := f.results[r.URL.Path]
	if !ok {
		result = map[string]interface{}{}
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "result": result})
}

func (f *fakeOdoo) config() *Config {
	return &Config{
		URL:           f.server.URL,
		Database:      "demo",
		Username:      "admin",
		Password:      "secret",
		PreferredLang: "en_US",
	}
}

func TestClient_AuthenticateLogin(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointAuthenticate] = map[string]interface{}{"uid": 2}

	client := New(fake.config())
	err := client.Authenticate(context.Background())
	assert.Nil(t, err)
	if assert.NotNil(t, client.UID()) {
		assert.Equal(t, 2, *client.UID())
	}
	assert.Equal(t, "sid-1", client.SessionID())
	assert.EqualValues(t, "demo", fake.last["db"])
	assert.EqualValues(t, "admin", fake.last["login"])
}

func TestClient_AuthenticateFailureIsClean(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.rpcErr[endpointAuthenticate] = "Access Denied"

	client := New(fake.config())
	// two consecutive failures leave no partial state behind
	for i := 0; i < 2; i++ {
		err := client.Authenticate(context.Background())
		var authErr *AuthenticationError
		assert.True(t, errors.As(err, &authErr))
		assert.Nil(t, client.UID())
		assert.Empty(t, client.SessionID())
	}
}

func TestClient_AuthenticateBearer(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointCapabilities] = map[string]interface{}{
		"user": map[string]interface{}{"id": 7, "name": "Bot", "login": "bot"},
	}

	config := fake.config()
	config.Username = ""
	config.Password = ""
	config.APIKey = "key-1"
	client := New(config)

	err := client.Authenticate(context.Background())
	assert.Nil(t, err)
	if assert.NotNil(t, client.UID()) {
		assert.Equal(t, 7, *client.UID())
	}
	assert.Equal(t, "Bearer key-1", fake.lastAuth)
	assert.Equal(t, endpointCapabilities, fake.lastPath)
}

func TestClient_AuthenticateBearerInvalidKey(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.rpcErr[endpointCapabilities] = "Invalid API key"

	config := fake.config()
	config.APIKey = "bad-key"
	client := New(config)

	err := client.Authenticate(context.Background())
	var authErr *AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.Nil(t, client.UID())
}

func TestClient_CallNotConnected(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()

	client := New(fake.config())
	_, err := client.Call(context.Background(), endpointSearch, nil)
	assert.True(t, errors.Is(err, ErrNotConnected))
	// fails fast: no network call was issued
	assert.EqualValues(t, 0, atomic.LoadInt32(&fake.hits))
}

func TestClient_CallInjectsLocaleAndSession(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointAuthenticate] = map[string]interface{}{"uid": 2}

	config := fake.config()
	config.PreferredLang = "fr_FR"
	client := New(config)
	assert.Nil(t, client.Authenticate(context.Background()))

	params := map[string]interface{}{
		"model":   "res.partner",
		"context": map[string]interface{}{"tz": "UTC"},
	}
	_, err := client.Call(context.Background(), endpointSearch, params)
	assert.Nil(t, err)

	callContext, _ := fake.last["context"].(map[string]interface{})
	assert.EqualValues(t, "fr_FR", callContext["lang"])
	assert.EqualValues(t, "UTC", callContext["tz"])
	assert.Equal(t, "sid-1", fake.lastSID)
	// the caller's mapping stays untouched
	original := params["context"].(map[string]interface{})
	_, injected := original["lang"]
	assert.False(t, injected)
}

func TestClient_CallRemoteError(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointAuthenticate] = map[string]interface{}{"uid": 2}
	fake.rpcErr[endpointExecute] = "You are not allowed to modify 'Sales Order'"

	client := New(fake.config())
	assert.Nil(t, client.Authenticate(context.Background()))

	_, err := client.Call(context.Background(), endpointExecute, map[string]interface{}{"model": "sale.order"})
	var remoteErr *RemoteError
	if assert.True(t, errors.As(err, &remoteErr)) {
		assert.Equal(t, "You are not allowed to modify 'Sales Order'", remoteErr.Message)
	}
}

func TestClient_CallTransportError(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointAuthenticate] = map[string]interface{}{"uid": 2}

	client := New(fake.config())
	assert.Nil(t, client.Authenticate(context.Background()))

	fake.status = http.StatusBadGateway
	_, err := client.Call(context.Background(), endpointSearch, nil)
	var transportErr *TransportError
	if assert.True(t, errors.As(err, &transportErr)) {
		assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	}
}

func TestClient_CallAfterFailedReauth(t *testing.T) {
	fake := newFakeOdoo()
	defer fake.server.Close()
	fake.results[endpointAuthenticate] = map[string]interface{}{"uid": 2}

	client := New(fake.config())
	assert.Nil(t, client.Authenticate(context.Background()))

	// a failed re-authentication clears the whole credential; subsequent
	// calls are gated instead of going out with stale cookies
	fake.rpcErr[endpointAuthenticate] = "Access Denied"
	assert.NotNil(t, client.Authenticate(context.Background()))

	hits := atomic.LoadInt32(&fake.hits)
	_, err := client.Call(context.Background(), endpointSearch, nil)
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Equal(t, hits, atomic.LoadInt32(&fake.hits))
}

func TestClient_AuthenticateUnreachable(t *testing.T) {
	fake := newFakeOdoo()
	config := fake.config()
	fake.server.Close()

	client := New(config)
	err := client.Authenticate(context.Background())
	var authErr *AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.Nil(t, client.UID())
	assert.Empty(t, client.SessionID())
}
