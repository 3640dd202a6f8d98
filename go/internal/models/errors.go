package models

import "errors"

// ErrNotFound is returned by stores when a quiz, session, question or team does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks request validation failures
var ErrInvalidInput = errors.New("invalid input")
