// Package mocks intercepts network traffic with named rules.
//
// A rule pairs a URL glob (and optionally a method) with a handler that
// decides the reply. Rules are installed on a Router: the browser session for
// page traffic, or Transport for Go HTTP clients. A Registry binds every rule
// to an alias so specs can wait on it and inspect what it received.
package mocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Mock errors
var (
	ErrDuplicateAlias = errors.New("mock alias already registered")
	ErrUnknownAlias   = errors.New("unknown mock alias")
	ErrNoCall         = errors.New("mock alias was not called")
	ErrNetworkError   = errors.New("forced network error")
	ErrInvalidPattern = errors.New("invalid url pattern")
)

// Request is what an intercepted call carried
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
	Time   time.Time
}

// Decode unmarshals the JSON request body into v
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Reply describes how an intercepted call is answered. At most one of
// NetworkError, NoResponse and Passthrough should be set; Delay applies to
// every outcome.
type Reply struct {
	Status       int
	Body         any
	Headers      map[string]string
	Delay        time.Duration
	NetworkError bool
	NoResponse   bool
	Passthrough  bool
}

// JSON replies with status and body encoded as JSON
func JSON(status int, body any) Reply {
	return Reply{Status: status, Body: body}
}

// StatusCode returns the reply status, 200 when unset
func (r Reply) StatusCode() int {
	if r.Status == 0 {
		return http.StatusOK
	}
	return r.Status
}

// Encode returns the wire body and its content type
func (r Reply) Encode() ([]byte, string, error) {
	switch b := r.Body.(type) {
	case nil:
		return nil, "application/json", nil
	case []byte:
		return b, "application/octet-stream", nil
	case string:
		return []byte(b), "text/plain; charset=utf-8", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode mock body: %w", err)
		}
		return data, "application/json", nil
	}
}

// Handler decides the reply to an intercepted request
type Handler func(Request) Reply

// Static always answers with reply
func Static(reply Reply) Handler {
	return func(Request) Reply { return reply }
}

// Rule is one interception: requests whose method and URL match are
// answered by Handler.
type Rule struct {
	Alias   string
	Method  string
	Pattern string
	Handler Handler

	re *regexp.Regexp
}

// NewRule compiles pattern. An empty method matches every method.
func NewRule(alias, method, pattern string, h Handler) (*Rule, error) {
	re, err := CompileGlob(pattern)
	if err != nil {
		return nil, err
	}
	return &Rule{
		Alias:   alias,
		Method:  strings.ToUpper(method),
		Pattern: pattern,
		Handler: h,
		re:      re,
	}, nil
}

// Matches reports whether the rule intercepts method and url
func (r *Rule) Matches(method, url string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	return r.re.MatchString(url)
}

// Regexp returns the compiled URL pattern
func (r *Rule) Regexp() *regexp.Regexp {
	return r.re
}

// CompileGlob turns a URL glob into an anchored regular expression.
// "**" matches any run of characters, "*" any run without "/", and "?" a
// single character.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	runes := []rune(pattern)
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// Router installs and removes rules on a traffic carrier
type Router interface {
	Route(rule *Rule) error
	Unroute(rule *Rule) error
}
