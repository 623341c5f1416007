//go:build e2e

package api

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func TestValidation_UserEmails(t *testing.T) {
	ctx := testContext(t)

	page, resp, err := newClient().ListUsers(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, page)

	for _, u := range page.Data {
		assert.Regexp(t, emailPattern, u.Email, "user %d", u.ID)
	}
}

func TestValidation_ResourceColors(t *testing.T) {
	ctx := testContext(t)

	page, resp, err := newClient().ListResources(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, page)

	for _, r := range page.Data {
		assert.Regexp(t, colorPattern, r.Color, "resource %d", r.ID)
		assert.Greater(t, r.Year, 1900, "resource %d", r.ID)
	}
}

func TestValidation_PerPage(t *testing.T) {
	ctx := testContext(t)

	page, resp, err := newClient().ListUsers(ctx, api.ListOptions{Page: 1, PerPage: 3})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, page)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PerPage)
	assert.LessOrEqual(t, len(page.Data), 3)
}
