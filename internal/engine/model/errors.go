package model

import (
	"errors"
	"fmt"
)

// Errors returned by model operations.
var (
	// ErrPositionOutOfRange indicates a position outside the document.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrInvalidContent indicates content that violates a node type's content rules.
	ErrInvalidContent = errors.New("invalid content")

	// ErrUnknownNodeType indicates a node type name not defined by the schema.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrUnknownMarkType indicates a mark type name not defined by the schema.
	ErrUnknownMarkType = errors.New("unknown mark type")

	// ErrMissingAttr indicates a required attribute was not supplied.
	ErrMissingAttr = errors.New("missing required attribute")

	// ErrInvalidSchema indicates a schema spec that cannot be compiled.
	ErrInvalidSchema = errors.New("invalid schema")
)

// OutOfRangeError reports a position that cannot be resolved in a document.
type OutOfRangeError struct {
	Pos  int
	Size int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range [0:%d]", e.Pos, e.Size)
}

// Unwrap returns ErrPositionOutOfRange.
func (e *OutOfRangeError) Unwrap() error {
	return ErrPositionOutOfRange
}

// ContentError reports content rejected by a node type.
type ContentError struct {
	Type    string
	Content string
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	return fmt.Sprintf("invalid content for node %s: %s", e.Type, e.Content)
}

// Unwrap returns ErrInvalidContent.
func (e *ContentError) Unwrap() error {
	return ErrInvalidContent
}
