//go:build e2e

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
	"github.com/swaglabs-qa/storefront-e2e/internal/handlers"
)

func TestErrors_Preflight(t *testing.T) {
	ctx := testContext(t)

	resp, err := newClient().Options(ctx, "/users")
	require.NoError(t, err)
	assert.NoError(t, api.ExpectStatus(resp, http.StatusOK, http.StatusNoContent))
}

// The public service may accept a malformed body, so both outcomes pass.
func TestErrors_MalformedJSON(t *testing.T) {
	ctx := testContext(t)

	resp, err := newClient().DoRaw(ctx, http.MethodPost, "/users", "application/json", []byte("invalid json"))
	require.NoError(t, err)
	assert.NoError(t, api.ExpectStatus(resp, http.StatusBadRequest, http.StatusCreated))
}

// The key requirement is enforced inconsistently, so the request either
// passes or is rejected with the signup hint.
func TestErrors_MissingAPIKey(t *testing.T) {
	ctx := testContext(t)

	resp, err := newClient(api.WithoutAPIKey()).Do(ctx, http.MethodGet, "/users", nil, nil)
	require.NoError(t, err)
	require.NoError(t, api.ExpectStatus(resp, http.StatusOK, http.StatusUnauthorized))

	if resp.Status == http.StatusUnauthorized {
		var body api.ErrorBody
		require.NoError(t, resp.Decode(&body))
		assert.Equal(t, handlers.MsgMissingAPIKey, body.Error)
		assert.Equal(t, handlers.MissingAPIKeySignup, body.HowToGetOne)
		return
	}

	var page api.Page[api.User]
	require.NoError(t, resp.Decode(&page))
	assert.NotNil(t, page.Data)
}
