package transaction

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidRange      = errors.New("invalid date range")
)
