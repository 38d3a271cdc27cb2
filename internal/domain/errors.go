package domain

import "errors"

var (
	// ErrQueryTooShort signals a query below the configured minimum length.
	ErrQueryTooShort = errors.New("query too short")
	// ErrEngineUnavailable signals that the search engine is not reachable.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineProtocol signals an unparseable or non-success engine response.
	ErrEngineProtocol = errors.New("search engine protocol error")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
