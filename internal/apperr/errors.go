package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// Forbidden indicates the caller is authenticated but not allowed to act.
var Forbidden = errors.New("forbidden")

// Unauthorized indicates missing or invalid credentials.
var Unauthorized = errors.New("unauthorized")
