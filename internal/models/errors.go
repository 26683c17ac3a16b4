package models

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported calculation type")
	ErrInvalidInputs   = errors.New("invalid inputs")
	ErrDivisionByZero  = errors.New("cannot divide by zero")
)
