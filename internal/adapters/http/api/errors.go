package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrTitleRequired     = errors.New("title is required")
	ErrDatetimeRequired  = errors.New("datetime is required")
	ErrMalformedDatetime = errors.New("datetime does not parse")
	ErrRateLimited       = errors.New("too many requests")
)
