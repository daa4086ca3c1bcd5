package web

// contextKey is a private type for context keys defined in this package.
type contextKey string

// requestIDKey is the context key under which the request ID is stored.
const requestIDKey = contextKey("requestID")
