package model

import "errors"

// Common errors used across the application
var (
	// Table errors
	ErrTableNotFound      = errors.New("table not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrOperationForbidden = errors.New("operation forbidden")
	ErrConflict           = errors.New("table id already in use")

	// Input errors
	ErrInvalidCommand    = errors.New("invalid command")
	ErrInvalidFatePoints = errors.New("fate points must not be negative")

	// Processing errors
	ErrInternal        = errors.New("internal error")
	ErrProcessorClosed = errors.New("command processor is closed")
)
