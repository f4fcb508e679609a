package domain

import "errors"

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrMalformedDueTime = errors.New("malformed due time token")
	ErrDueTimeTooSoon   = errors.New("due time in the past or too short")
	ErrTooFewOptions    = errors.New("poll needs a title and at least two options")
	ErrTooManyOptions   = errors.New("poll has more options than reaction symbols")
	ErrMalformedBody    = errors.New("malformed reminder body")
	ErrUnsupportedText  = errors.New("text contains unsupported characters")
)
