// Package api is the gateway to the prediction-market backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     auth, market, and admin endpoints.
//  2. A concrete HTTP implementation (see HTTPClient) that composes
//     explicit middleware around the transport: a request-id decorator, a
//     bearer-credential decorator fed by a TokenSource, and a response
//     decorator that fires the injected hook on every 401.
//  3. An error taxonomy surfaced as sentinel errors plus *APIError.
//
// # Error Handling
//
// Callers match failure classes with errors.Is / errors.As:
// ErrUnavailable (no response), ErrUnauthorized (credential rejected),
// ErrServer (5xx), *APIError (other 4xx, carries the server message).
//
// The 401 hook is a side effect layered underneath the caller's own error
// handling: it always fires, and the original error is still returned.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package api

// Compile-time check that HTTPClient satisfies the contract.
var _ Client = (*HTTPClient)(nil)
