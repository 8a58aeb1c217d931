package entity

import "errors"

var (
	// ErrDataUnavailable covers every upstream failure: transport errors, timeouts,
	// bad credentials and responses missing the expected top-level key.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedResponse is returned when an upstream payload has the expected
	// shape but a field cannot be converted to its typed form.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrMalformedArticle is returned when an article lacks a field required for rendering.
	ErrMalformedArticle = errors.New("malformed article")

	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotFound         = errors.New("not found")
)
