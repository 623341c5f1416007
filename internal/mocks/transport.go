package mocks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Transport is an http.RoundTripper that answers requests from installed
// rules and forwards everything else to Next. Rules installed later are
// consulted first.
type Transport struct {
	Next http.RoundTripper

	mu    sync.RWMutex
	rules []*Rule
}

// NewTransport creates a transport forwarding unmatched requests to next,
// or to http.DefaultTransport when next is nil.
func NewTransport(next http.RoundTripper) *Transport {
	return &Transport{Next: next}
}

// Route installs rule
func (t *Transport) Route(rule *Rule) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append(t.rules, rule)
	return nil
}

// Unroute removes rule
func (t *Transport) Unroute(rule *Rule) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.rules {
		if r == rule {
			t.rules = append(t.rules[:i], t.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (t *Transport) match(method, url string) *Rule {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.rules) - 1; i >= 0; i-- {
		if t.rules[i].Matches(method, url) {
			return t.rules[i]
		}
	}
	return nil
}

func (t *Transport) next() http.RoundTripper {
	if t.Next != nil {
		return t.Next
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rule := t.match(req.Method, req.URL.String())
	if rule == nil {
		return t.next().RoundTrip(req)
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read intercepted body: %w", err)
		}
	}

	reply := rule.Handler(Request{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
		Time:   time.Now(),
	})

	if reply.Delay > 0 {
		timer := time.NewTimer(reply.Delay)
		select {
		case <-timer.C:
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		}
	}

	switch {
	case reply.NoResponse:
		<-req.Context().Done()
		return nil, req.Context().Err()
	case reply.NetworkError:
		return nil, fmt.Errorf("%w: %s %s", ErrNetworkError, req.Method, req.URL)
	case reply.Passthrough:
		forwarded := req.Clone(req.Context())
		forwarded.Body = io.NopCloser(bytes.NewReader(body))
		forwarded.ContentLength = int64(len(body))
		return t.next().RoundTrip(forwarded)
	}

	payload, contentType, err := reply.Encode()
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", contentType)
	header.Set("Content-Length", strconv.Itoa(len(payload)))
	for k, v := range reply.Headers {
		header.Set(k, v)
	}

	status := reply.StatusCode()
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}, nil
}
