package service

import "errors"

var ErrNotFound = errors.New("not found")

var (
	ErrDecode         = errors.New("decode")
	ErrValidation     = errors.New("validation")
	ErrImmutableField = errors.New("immutable field")
	ErrStoreWrite     = errors.New("store write failed")
)
