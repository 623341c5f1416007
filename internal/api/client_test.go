package api_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
	"github.com/swaglabs-qa/storefront-e2e/internal/config"
)

func newClient(t *testing.T, h http.Handler, opts ...api.Option) *api.Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return api.NewClient(&config.APIConfig{BaseURL: server.URL + "/api", APIKey: "test-key"}, opts...)
}

func jsonHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json; charset=utf-8")
	return h
}

func TestClient_SendsAPIKeyAndDecodesPage(t *testing.T) {
	body := []byte(`{"page":2,"per_page":6,"total":12,"total_pages":2,"data":[{"id":7,"email":"michael.lawson@reqres.in","first_name":"Michael","last_name":"Lawson","avatar":"https://reqres.in/img/faces/7-image.jpg"}]}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(200, jsonHeaders(), body))
	client := newClient(t, handler)

	page, resp, err := client.ListUsers(context.Background(), api.ListOptions{Page: 2})
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, "/api/users", req.Request.URL.Path)
	assert.Equal(t, "2", req.Request.URL.Query().Get("page"))
	assert.Equal(t, "test-key", req.Request.Header.Get(api.APIKeyHeader))

	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType())
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Michael", page.Data[0].FirstName)
}

func TestClient_WithoutAPIKey(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(401))
	client := newClient(t, handler, api.WithoutAPIKey())

	resp, err := client.Do(context.Background(), http.MethodGet, "/users", nil, nil)
	require.NoError(t, err)

	req := <-requests
	assert.Empty(t, req.Request.Header.Get(api.APIKeyHeader))
	assert.Equal(t, 401, resp.Status)
}

func TestClient_NotFoundIsNotAnError(t *testing.T) {
	client := newClient(t, httphelpers.HandlerWithResponse(404, jsonHeaders(), []byte(`{}`)))

	user, resp, err := client.GetUser(context.Background(), 23)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 404, resp.Status)
	assert.True(t, resp.IsEmpty())
}

func TestClient_PostsJSONBody(t *testing.T) {
	body := []byte(`{"name":"morpheus","job":"leader","id":"123","createdAt":"2024-01-01T00:00:00.000Z"}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(201, jsonHeaders(), body))
	client := newClient(t, handler)

	rec, resp, err := client.CreateUser(context.Background(), api.Job{Name: "morpheus", Job: "leader"})
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, http.MethodPost, req.Request.Method)
	assert.JSONEq(t, `{"name":"morpheus","job":"leader"}`, string(req.Body))
	assert.Equal(t, "application/json", req.Request.Header.Get("Content-Type"))

	assert.Equal(t, 201, resp.Status)
	require.NotNil(t, rec)
	assert.Equal(t, "123", rec.ID)
	assert.NotEmpty(t, rec.CreatedAt)
}

func TestClient_AuthErrorIsDecoded(t *testing.T) {
	client := newClient(t, httphelpers.HandlerWithResponse(400, jsonHeaders(), []byte(`{"error":"Missing password"}`)))

	res, resp, err := client.Register(context.Background(), api.Credentials{Email: "sydney@fife"})
	require.NoError(t, err)
	assert.Equal(t, 400, resp.Status)
	require.NotNil(t, res)
	assert.Contains(t, res.Error, "Missing password")
}

func TestClient_DoRawSendsBodyVerbatim(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(400))
	client := newClient(t, handler)

	resp, err := client.DoRaw(context.Background(), http.MethodPost, "/users", "application/json", []byte(`{"name": "test", "job":`))
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, `{"name": "test", "job":`, string(req.Body))
	assert.True(t, api.StatusIn(resp.Status, 400, 201))
}

func TestClient_MeasuresDuration(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))

	resp, err := client.DeleteUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.Status)
	assert.GreaterOrEqual(t, resp.Duration, 30*time.Millisecond)
}

func TestClient_RequestLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	client := newClient(t, httphelpers.HandlerWithStatus(404), api.WithRequestLogging())
	_, _, err := client.GetUser(context.Background(), 23)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GET ")
	assert.Contains(t, buf.String(), "/api/users/23 -> 404")

	buf.Reset()
	_, _, err = newClient(t, httphelpers.HandlerWithStatus(404)).GetUser(context.Background(), 23)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestClient_FetchUsersConcurrently(t *testing.T) {
	var inFlight, peak int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		if r.URL.Path == "/api/users/3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":{"id":1,"email":"a@b.c","first_name":"A","last_name":"B","avatar":"x"}}`)
	}))

	results := client.FetchUsers(context.Background(), 1, 2, 3, 4, 5)

	require.Len(t, results, 5)
	for i, res := range results {
		assert.Equal(t, i+1, res.ID)
		require.NoError(t, res.Err)
		if res.ID == 3 {
			assert.Equal(t, 404, res.Response.Status)
			assert.Nil(t, res.User)
			continue
		}
		assert.Equal(t, 200, res.Response.Status)
		assert.NotNil(t, res.User)
	}
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestClient_TransportErrorIsReturned(t *testing.T) {
	client := api.NewClient(&config.APIConfig{BaseURL: "http://127.0.0.1:1/api"})

	_, err := client.Do(context.Background(), http.MethodGet, "/users", nil, nil)
	assert.Error(t, err)
}

func TestExpectStatus(t *testing.T) {
	assert.NoError(t, api.ExpectStatus(&api.Response{Status: 204}, 200, 204))

	err := api.ExpectStatus(&api.Response{Status: 500, Body: []byte("boom")}, 200, 204)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500 not in {200, 204}")
}
