package analyst

import "errors"

var (
	// ErrEmptyResponse is returned when the provider replies without content
	ErrEmptyResponse = errors.New("empty response from LLM")

	// ErrInvalidResponse is returned when the reply is not JSON or violates the response schema
	ErrInvalidResponse = errors.New("invalid response from LLM")
)
