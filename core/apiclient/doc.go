// Package apiclient is the JSON-over-HTTP client for the storefront backend.
//
// It covers the five endpoints the storefront front end talks to: current
// user resolution, login, registration, email capture and checkout session
// creation. Once a bearer token is attached with SetToken it is sent as
// "Authorization: Bearer <token>" on every request.
//
// Failures are classified so callers can branch with errors.Is:
//
//   - ErrTransport: the request never produced a response (network, timeout)
//   - ErrUnauthorized: the backend answered 401
//   - ErrMalformedResponse: a 2xx answer could not be decoded or lacks required fields
//   - *APIError: any other non-2xx answer, carrying the backend's detail message
//
// The client never retries. Attaching and detaching the credential is
// reserved for the session manager; other consumers only issue requests.
package apiclient
