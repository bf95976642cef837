package domain

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDraft        = errors.New("invalid draft")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrMissingAPIKey       = errors.New("missing API key")
)
