package mocks

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		pattern string
		url     string
		match   bool
	}{
		{"**/api/products**", "http://localhost:3000/api/products", true},
		{"**/api/products**", "http://localhost:3000/api/products?page=2", true},
		{"**/api/products**", "http://localhost:3000/api/cart", false},
		{"**/auth/**", "https://www.saucedemo.com/auth/login", true},
		{"**/auth/**", "https://www.saucedemo.com/auth", false},
		{"**/api/cart/add", "http://x/api/cart/add", true},
		{"**/api/cart/add", "http://x/api/cart/add/1", false},
		{"http://x/api/*", "http://x/api/users", true},
		{"http://x/api/*", "http://x/api/users/2", false},
		{"http://x/api/user?", "http://x/api/users", true},
		{"**", "https://anything.example/at/all?q=1", true},
		{"**/a.b", "http://x/aXb", false},
		{"**/café", "http://x/café", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.url, func(t *testing.T) {
			re, err := CompileGlob(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.match, re.MatchString(tt.url))
		})
	}
}

func TestCompileGlob_Empty(t *testing.T) {
	_, err := CompileGlob("")
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

func TestRule_Matches(t *testing.T) {
	rule, err := NewRule("cart", "post", "**/api/cart/add", nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rule.Method)
	assert.True(t, rule.Matches(http.MethodPost, "http://x/api/cart/add"))
	assert.False(t, rule.Matches(http.MethodGet, "http://x/api/cart/add"))

	anyMethod, err := NewRule("all", "", "**", nil)
	require.NoError(t, err)
	assert.True(t, anyMethod.Matches(http.MethodDelete, "http://x/y"))
}

func TestReply_Encode(t *testing.T) {
	body, contentType, err := JSON(201, map[string]int{"id": 7}).Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"id":7}`, string(body))

	body, contentType, err = Reply{Body: "plain"}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.Equal(t, "plain", string(body))

	assert.Equal(t, http.StatusOK, Reply{}.StatusCode())
	assert.Equal(t, http.StatusTeapot, Reply{Status: http.StatusTeapot}.StatusCode())
}
