package apperrors

import (
	"net/http"
)

// Factories and predefined values for the recurring domain errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation marks an operation the business rules do not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Feed / ledger rules ---

// ErrSelfInteraction rejects reacting to or applying on an own post.
var ErrSelfInteraction = New(
	CodeForbidden,
	"feed",
	"Interaction with your own post is not allowed",
	http.StatusForbidden,
)

// ErrNotFeedOwner rejects mutating or inspecting someone else's post.
var ErrNotFeedOwner = New(
	CodeForbidden,
	"feed",
	"You are not the author of this post",
	http.StatusForbidden,
)

// ErrReactionNotAllowed gates reactions behind having posted at least once.
var ErrReactionNotAllowed = New(
	CodeForbidden,
	"feed",
	"Post to the feed before reacting to other posts",
	http.StatusForbidden,
)

// ErrInvalidUserRole marks an operation not available to the caller's role.
var ErrInvalidUserRole = New(
	CodeForbidden,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusForbidden,
)
