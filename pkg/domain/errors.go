package domain

import "errors"

// ErrSessionNotFound is returned when a user's session document does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSignature is returned when a webhook payload fails signature
// verification at the boundary.
var ErrInvalidSignature = errors.New("invalid webhook signature")
