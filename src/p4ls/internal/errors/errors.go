// Package errors defines the error types shared across p4ls packages.
package errors

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/protocol"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// UUIDNotFoundError indicates that no session exists for a UUID.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("no session found for UUID %q", n.UUID)
}

// MissingSessionKeyError indicates a context without a session UUID.
type MissingSessionKeyError struct{}

// Error is an implementation of the error interface.
func (n *MissingSessionKeyError) Error() string {
	return "context does not carry a session UUID"
}

// DocumentNotFoundError indicates that a document is not found.
type DocumentNotFoundError struct {
	Document protocol.TextDocumentIdentifier
}

// Error is an implementation of the error interface.
func (n *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", n.Document.URI)
}

// HandlerError is a request-specific failure returned to the caller in place
// of internal detail. It is never fatal to the session.
type HandlerError struct {
	Message string
}

// Error is an implementation of the error interface.
func (n *HandlerError) Error() string {
	return n.Message
}

// NewHandlerError returns a HandlerError with the given message.
func NewHandlerError(message string) *HandlerError {
	return &HandlerError{Message: message}
}
