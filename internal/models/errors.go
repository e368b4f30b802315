// ABOUTME: Error taxonomy shared by the habit and todo stores.
// ABOUTME: Callers match with errors.Is; stores wrap these with context.
package models

import "errors"

var (
	// ErrDuplicateName means another habit already uses the name (case-insensitive).
	ErrDuplicateName = errors.New("a habit with this name already exists")
	// ErrNotFound means no habit or todo matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means a required field was blank or a duration was not positive.
	ErrInvalidInput = errors.New("invalid input")
)
