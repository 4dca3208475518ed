package api

import (
	"net/http"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, or "" when the client
// should send the request unauthenticated.
type TokenSource func() string

// authRoundTripper attaches the bearer credential to every outbound
// request. Requests proceed unauthenticated when the source yields "".
type authRoundTripper struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.tokens(); tok != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.base.RoundTrip(req)
}

// requestIDRoundTripper tags every request with a fresh X-Request-Id so
// client and server logs can be correlated.
type requestIDRoundTripper struct {
	base http.RoundTripper
}

func (t *requestIDRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(req)
}

// unauthorizedHookRoundTripper invokes hook on every 401 response before
// handing the response back unchanged. The policy is global: it applies to
// every endpoint, the credential exchange included; callers distinguish
// "bad login" from "session expired" by request context, not here.
type unauthorizedHookRoundTripper struct {
	base http.RoundTripper
	hook func()
}

func (t *unauthorizedHookRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusUnauthorized && t.hook != nil {
		t.hook()
	}
	return resp, err
}

// newTransport composes the middleware chain around base:
// request id -> bearer auth -> transport -> 401 hook.
func newTransport(base http.RoundTripper, tokens TokenSource, onUnauthorized func()) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	rt = &unauthorizedHookRoundTripper{base: rt, hook: onUnauthorized}
	rt = &authRoundTripper{base: rt, tokens: tokens}
	rt = &requestIDRoundTripper{base: rt}
	return rt
}
