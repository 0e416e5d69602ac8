package layout

import "errors"

var (
	ErrNegativeCount   = errors.New("layout: negative element count")
	ErrUnknownCategory = errors.New("layout: unknown category")
	ErrInvalidShape    = errors.New("layout: invalid shape")
)
