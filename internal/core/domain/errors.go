package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid (programmer error:
	// empty query, top_k < 1, and the like)
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable indicates the embedding or vector backend could
	// not be reached. Caught at the retrieval tier boundary and never
	// propagated past Search.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCorpusEmpty indicates no documents have been ingested yet
	ErrCorpusEmpty = errors.New("corpus empty")

	// ErrIndexNotBuilt indicates the lexical index has not been built yet
	ErrIndexNotBuilt = errors.New("lexical index not built")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServiceUnavailable indicates an external AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
