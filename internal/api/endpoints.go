package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ListOptions controls paging of list endpoints. Zero values are omitted.
type ListOptions struct {
	Page    int
	PerPage int
	Delay   int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Delay > 0 {
		q.Set("delay", strconv.Itoa(o.Delay))
	}
	return q
}

// ListUsers fetches one page of users
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (*Page[User], *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/users", opts.values(), nil)
	if err != nil {
		return nil, nil, err
	}
	page, err := decodeOn[Page[User]](resp, http.StatusOK)
	return page, resp, err
}

// GetUser fetches one user. A 404 yields a nil record and no error.
func (c *Client) GetUser(ctx context.Context, id int) (*Single[User], *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil)
	if err != nil {
		return nil, nil, err
	}
	user, err := decodeOn[Single[User]](resp, http.StatusOK)
	return user, resp, err
}

// CreateUser posts a new user
func (c *Client) CreateUser(ctx context.Context, job Job) (*JobRecord, *Response, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/users", nil, job)
	if err != nil {
		return nil, nil, err
	}
	rec, err := decodeOn[JobRecord](resp, http.StatusCreated)
	return rec, resp, err
}

// UpdateUser replaces a user
func (c *Client) UpdateUser(ctx context.Context, id int, job Job) (*JobRecord, *Response, error) {
	return c.updateUser(ctx, http.MethodPut, id, job)
}

// PatchUser partially updates a user
func (c *Client) PatchUser(ctx context.Context, id int, job Job) (*JobRecord, *Response, error) {
	return c.updateUser(ctx, http.MethodPatch, id, job)
}

func (c *Client) updateUser(ctx context.Context, method string, id int, job Job) (*JobRecord, *Response, error) {
	resp, err := c.Do(ctx, method, fmt.Sprintf("/users/%d", id), nil, job)
	if err != nil {
		return nil, nil, err
	}
	rec, err := decodeOn[JobRecord](resp, http.StatusOK)
	return rec, resp, err
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, id int) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// ListResources fetches one page of resources
func (c *Client) ListResources(ctx context.Context, opts ListOptions) (*Page[Resource], *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/unknown", opts.values(), nil)
	if err != nil {
		return nil, nil, err
	}
	page, err := decodeOn[Page[Resource]](resp, http.StatusOK)
	return page, resp, err
}

// GetResource fetches one resource
func (c *Client) GetResource(ctx context.Context, id int) (*Single[Resource], *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/unknown/%d", id), nil, nil)
	if err != nil {
		return nil, nil, err
	}
	res, err := decodeOn[Single[Resource]](resp, http.StatusOK)
	return res, resp, err
}

// GetProduct fetches one product
func (c *Client) GetProduct(ctx context.Context, id int) (*Single[Resource], *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil)
	if err != nil {
		return nil, nil, err
	}
	res, err := decodeOn[Single[Resource]](resp, http.StatusOK)
	return res, resp, err
}

// CreateProduct posts a new product
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*ProductRecord, *Response, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/products", nil, in)
	if err != nil {
		return nil, nil, err
	}
	rec, err := decodeOn[ProductRecord](resp, http.StatusCreated)
	return rec, resp, err
}

// Register signs a user up. The result carries either a token or an error.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResult, *Response, error) {
	return c.auth(ctx, "/register", creds)
}

// Login signs a user in
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, *Response, error) {
	return c.auth(ctx, "/login", creds)
}

func (c *Client) auth(ctx context.Context, path string, creds Credentials) (*AuthResult, *Response, error) {
	resp, err := c.Do(ctx, http.MethodPost, path, nil, creds)
	if err != nil {
		return nil, nil, err
	}
	res, err := decodeOn[AuthResult](resp, http.StatusOK, http.StatusBadRequest)
	return res, resp, err
}

// Options sends a CORS preflight style request
func (c *Client) Options(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, path, nil, nil)
}

// UserResult is the outcome of one request issued by FetchUsers
type UserResult struct {
	ID       int
	User     *Single[User]
	Response *Response
	Err      error
}

// FetchUsers requests every id concurrently. Each result is independent:
// a failed request is reported in its own Err and does not cancel the rest.
func (c *Client) FetchUsers(ctx context.Context, ids ...int) []UserResult {
	results := make([]UserResult, len(ids))
	var g errgroup.Group

	for i, id := range ids {
		g.Go(func() error {
			user, resp, err := c.GetUser(ctx, id)
			results[i] = UserResult{ID: id, User: user, Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
