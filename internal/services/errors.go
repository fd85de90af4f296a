package services

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidTagEdits  = errors.New("invalid tag edits")
)
