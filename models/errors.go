package models

import "errors"

var (
	ErrProcessNotFound  = errors.New("process not found")
	ErrPipelineNotFound = errors.New("pipeline not found")
	ErrDocumentNotFound = errors.New("document not found")
)

var ErrInvalidStatus = errors.New("invalid status filter")
