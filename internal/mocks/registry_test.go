package mocks

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// newTestRegistry returns a registry whose rules answer a client that falls
// through to a real server for unmatched requests.
func newTestRegistry(t *testing.T, fallback http.Handler, opts ...RegistryOption) (*Registry, *http.Client, string) {
	t.Helper()
	server := httptest.NewServer(fallback)
	t.Cleanup(server.Close)

	transport := NewTransport(http.DefaultTransport)
	reg := NewRegistry(transport, opts...)
	t.Cleanup(func() { _ = reg.Reset() })
	return reg, &http.Client{Transport: transport}, server.URL
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRegistry_ReplacesMatchingResponses(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))

	_, err := reg.Register("products", http.MethodGet, "**/api/products**", Static(JSON(200, map[string]any{"products": []string{}})))
	require.NoError(t, err)

	resp, body := get(t, client, base+"/api/products?page=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"products":[]}`, body)

	resp, _ = get(t, client, base+"/api/cart")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))

	_, err := reg.Register("auth", http.MethodGet, "**/auth/**", Static(Reply{Status: 200}))
	require.NoError(t, err)

	_, err = reg.Register("auth", http.MethodGet, "**/auth/**", Static(Reply{Status: 500}))
	assert.True(t, errors.Is(err, ErrDuplicateAlias))

	_, err = reg.Register("auth", http.MethodGet, "**/auth/**", Static(Reply{Status: 401}), WithOverwrite())
	require.NoError(t, err)

	resp, _ := get(t, client, base+"/auth/login")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegistry_LastRegisteredWins(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))

	_, err := reg.Register("broad", "", "**", Static(Reply{Status: 200}))
	require.NoError(t, err)
	_, err = reg.Register("narrow", "", "**/api/cart**", Static(Reply{Status: 409}))
	require.NoError(t, err)

	resp, _ := get(t, client, base+"/api/cart")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = get(t, client, base+"/api/products")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegistry_WaitConsumesCallsInOrder(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))
	alias, err := reg.Register("add", http.MethodPost, "**/api/cart/add", Static(Reply{Status: 200}))
	require.NoError(t, err)

	for _, id := range []string{"first", "second"} {
		resp, err := client.Post(base+"/api/cart/add", "application/json", strings.NewReader(`{"id":"`+id+`"}`))
		require.NoError(t, err)
		resp.Body.Close()
	}

	ctx := context.Background()
	var payload struct{ ID string }

	req, err := alias.Wait(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, req.Decode(&payload))
	assert.Equal(t, "first", payload.ID)

	req, err = alias.Wait(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, req.Decode(&payload))
	assert.Equal(t, "second", payload.ID)

	last, err := alias.LastBody()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"second"}`, string(last))

	require.NoError(t, alias.Verify(ctx, 2))
}

func TestRegistry_WaitBlocksUntilCall(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))
	_, err := reg.Register("users", http.MethodGet, "**/api/users", Static(Reply{Status: 200}))
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		resp, err := client.Get(base + "/api/users")
		if err == nil {
			resp.Body.Close()
		}
	}()

	req, err := reg.Wait(context.Background(), "users", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.False(t, req.Time.IsZero())
}

func TestRegistry_WaitTimesOut(t *testing.T) {
	reg, _, _ := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))
	_, err := reg.Register("idle", "", "**/idle", Static(Reply{}))
	require.NoError(t, err)

	_, err = reg.Wait(context.Background(), "idle", 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCall))

	var timeout *wait.TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, "0 calls", timeout.Observed)
}

func TestRegistry_UnknownAlias(t *testing.T) {
	reg, _, _ := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))

	_, err := reg.Wait(context.Background(), "missing", 10*time.Millisecond)
	assert.True(t, errors.Is(err, ErrUnknownAlias))

	_, err = reg.CallData("missing")
	assert.True(t, errors.Is(err, ErrUnknownAlias))
}

func TestRegistry_VerifyCallsMismatch(t *testing.T) {
	reg, _, _ := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound), WithWaitTimeout(50*time.Millisecond))
	_, err := reg.Register("never", "", "**/never", Static(Reply{}))
	require.NoError(t, err)

	err = reg.VerifyCalls(context.Background(), "never", 1)
	var timeout *wait.TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, 1, timeout.Expected)
	assert.Equal(t, 0, timeout.Observed)

	_, err = reg.CallData("never")
	assert.True(t, errors.Is(err, ErrNoCall))
}

func TestRegistry_Reset(t *testing.T) {
	reg, client, base := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))
	_, err := reg.Register("p", "", "**/api/products", Static(Reply{Status: 200}))
	require.NoError(t, err)

	require.NoError(t, reg.Reset())
	assert.Empty(t, reg.Aliases())

	resp, _ := get(t, client, base+"/api/products")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = reg.Register("p", "", "**/api/products", Static(Reply{Status: 200}))
	assert.NoError(t, err)
}

func TestRegistry_AnonymousAlias(t *testing.T) {
	reg, _, _ := newTestRegistry(t, httphelpers.HandlerWithStatus(http.StatusNotFound))

	a, err := reg.Register("", "", "**/a", Static(Reply{}))
	require.NoError(t, err)
	b, err := reg.Register("", "", "**/b", Static(Reply{}))
	require.NoError(t, err)
	assert.NotEqual(t, a.Name(), b.Name())
}

func TestTransport_Outcomes(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusAccepted))
	reg, client, base := newTestRegistry(t, handler)

	_, err := reg.Register("broken", "", "**/broken", Static(Reply{NetworkError: true}))
	require.NoError(t, err)
	_, err = reg.Register("through", "", "**/through", Static(Reply{Passthrough: true}))
	require.NoError(t, err)
	_, err = reg.Register("hang", "", "**/hang", Static(Reply{NoResponse: true}))
	require.NoError(t, err)
	_, err = reg.Register("slow", "", "**/slow", Static(Reply{Delay: 80 * time.Millisecond}))
	require.NoError(t, err)

	_, err = client.Get(base + "/broken")
	assert.True(t, errors.Is(err, ErrNetworkError))

	resp, err := client.Post(base+"/through", "text/plain", strings.NewReader("kept"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	forwarded := <-requests
	assert.Equal(t, "kept", string(forwarded.Body))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base+"/hang", nil)
	_, err = client.Do(req)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	start := time.Now()
	resp, _ = get(t, client, base+"/slow")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
