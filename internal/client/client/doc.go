// Package client talks to the collection tracker REST API on behalf of the
// CLI.
//
// # Overview
//
// Client is the transport-agnostic contract the CLI depends on. RESTClient
// implements it over HTTP/JSON. The session token lives only in the HttpOnly
// "jwt" cookie set by POST /auth/login; RESTClient keeps it in a cookie jar
// and replays it on every later call, so the CLI never handles the token.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable, 401 to ErrUnauthorized and 404
// to ErrNotFound. Any other non-2xx status is returned as *APIError with the
// server's message.
package client
