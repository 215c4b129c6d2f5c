package entity

import "errors"

var (
	// Selection errors
	ErrSelectionUnavailable = errors.New("bucket selection unavailable")

	// Backend errors
	ErrQueryFailed   = errors.New("backend query failed")
	ErrSessionFailed = errors.New("document store session failed")

	// Result errors
	ErrImageNotFound = errors.New("no matching image")
	ErrNoUsableURL   = errors.New("record has no usable image url")
)
