package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
	"github.com/swaglabs-qa/storefront-e2e/internal/fixtures"
)

// Default page size of list endpoints
const defaultPerPage = 6

// Auth error messages
const (
	MsgMissingPassword   = "Missing password"
	MsgMissingIdentity   = "Missing email or username"
	MsgUndefinedUser     = "Note: Only defined users succeed registration"
	MsgUserNotFound      = "user not found"
	MsgMissingAPIKey     = "Missing API key."
	MissingAPIKeySignup  = "https://reqres.in/signup"
	timestampLayout      = "2006-01-02T15:04:05.000Z"
	maxDelaySeconds      = 10
	maxRequestBodyLength = 1 << 20
)

// ReqresHandler is an in-process fake of the reqres REST API seeded from
// fixtures. Writes are echoed back but never stored.
type ReqresHandler struct {
	users     []api.User
	resources []api.Resource
	support   api.Support
	token     string

	requireKey bool
	apiKey     string
	delayUnit  time.Duration
	now        func() time.Time
	newID      func() string

	mu       sync.Mutex
	requests int
}

// ReqresOption customizes a ReqresHandler
type ReqresOption func(*ReqresHandler)

// WithAPIKey rejects requests that do not carry key in the x-api-key header
func WithAPIKey(key string) ReqresOption {
	return func(h *ReqresHandler) {
		h.requireKey = true
		h.apiKey = key
	}
}

// WithDelayUnit sets the unit of the delay query parameter, one second by
// default
func WithDelayUnit(d time.Duration) ReqresOption {
	return func(h *ReqresHandler) { h.delayUnit = d }
}

// WithClock replaces the clock used for createdAt and updatedAt
func WithClock(now func() time.Time) ReqresOption {
	return func(h *ReqresHandler) { h.now = now }
}

// NewReqresHandler creates the fake API over the seed data
func NewReqresHandler(data *fixtures.ReqresFixture, opts ...ReqresOption) *ReqresHandler {
	h := &ReqresHandler{
		users:     data.Users,
		resources: data.Resources,
		support:   data.Support,
		token:     data.Token,
		delayUnit: time.Second,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Requests returns how many requests reached a route
func (h *ReqresHandler) Requests() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.requests
}

// Routes returns the API router, to be mounted under /api
func (h *ReqresHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors)
	if h.requireKey {
		r.Use(requireAPIKey(h.apiKey))
	}
	r.Use(h.count)
	r.Use(h.delay)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createRecord)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateRecord)
		r.Patch("/{id}", h.updateRecord)
		r.Delete("/{id}", h.deleteRecord)
	})
	r.Route("/unknown", func(r chi.Router) {
		r.Get("/", h.listResources)
		r.Get("/{id}", h.getResource)
	})
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listResources)
		r.Post("/", h.createRecord)
		r.Get("/{id}", h.getResource)
	})
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	return r
}

func (h *ReqresHandler) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.requests++
		h.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// delay holds the response for the number of units in the delay query
// parameter
func (h *ReqresHandler) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n, err := strconv.Atoi(r.URL.Query().Get("delay")); err == nil && n > 0 {
			timer := time.NewTimer(time.Duration(min(n, maxDelaySeconds)) * h.delayUnit)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func paginate[T any](items []T, r *http.Request, support api.Support) api.Page[T] {
	page := positiveQuery(r, "page", 1)
	perPage := positiveQuery(r, "per_page", defaultPerPage)

	total := len(items)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	// page and perPage come from the query, so nothing here may overflow
	data := []T{}
	if page-1 < totalPages {
		start := (page - 1) * perPage
		end := start + min(perPage, total-start)
		data = make([]T, end-start)
		copy(data, items[start:end])
	}

	return api.Page[T]{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
		Support:    support,
	}
}

func positiveQuery(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func (h *ReqresHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paginate(h.users, r, h.support))
}

func (h *ReqresHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	for _, u := range h.users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, api.Single[api.User]{Data: u, Support: h.support})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (h *ReqresHandler) listResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paginate(h.resources, r, h.support))
}

func (h *ReqresHandler) getResource(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	for _, res := range h.resources {
		if res.ID == id {
			writeJSON(w, http.StatusOK, api.Single[api.Resource]{Data: res, Support: h.support})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

// createRecord echoes the posted object with an id and createdAt
func (h *ReqresHandler) createRecord(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(w, r)
	if !ok {
		return
	}
	body["id"] = h.newID()
	body["createdAt"] = h.now().UTC().Format(timestampLayout)
	writeJSON(w, http.StatusCreated, body)
}

// updateRecord echoes the posted fields with updatedAt
func (h *ReqresHandler) updateRecord(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(w, r)
	if !ok {
		return
	}
	body["updatedAt"] = h.now().UTC().Format(timestampLayout)
	writeJSON(w, http.StatusOK, body)
}

func (h *ReqresHandler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReqresHandler) register(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	user, found := h.findUser(creds)
	if !found {
		writeJSON(w, http.StatusBadRequest, api.ErrorBody{Error: MsgUndefinedUser})
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResult{ID: user.ID, Token: h.token})
}

func (h *ReqresHandler) login(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if _, found := h.findUser(creds); !found {
		writeJSON(w, http.StatusBadRequest, api.ErrorBody{Error: MsgUserNotFound})
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResult{Token: h.token})
}

func (h *ReqresHandler) findUser(creds api.Credentials) (api.User, bool) {
	for _, u := range h.users {
		if (creds.Email != "" && strings.EqualFold(u.Email, creds.Email)) ||
			(creds.Username != "" && strings.EqualFold(u.FirstName, creds.Username)) {
			return u, true
		}
	}
	return api.User{}, false
}

// decodeCredentials reads the auth body and reports missing fields. The
// identity is checked before the password.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (api.Credentials, bool) {
	var creds api.Credentials
	if err := decodeBody(r, &creds); err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return creds, false
	}
	switch {
	case creds.Email == "" && creds.Username == "":
		writeJSON(w, http.StatusBadRequest, api.ErrorBody{Error: MsgMissingIdentity})
		return creds, false
	case creds.Password == "":
		writeJSON(w, http.StatusBadRequest, api.ErrorBody{Error: MsgMissingPassword})
		return creds, false
	}
	return creds, true
}

func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body := map[string]any{}
	if err := decodeBody(r, &body); err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

var errMalformedJSON = errors.New("malformed JSON body")

func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyLength))
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errMalformedJSON
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, api.ErrorBody{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
