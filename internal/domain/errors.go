package domain

import "errors"

var ErrInvalidQuery = errors.New("invalid market query")
