// Package ats implements the hiring pipeline: application submission, the
// status/stage state machine, the employer stage registry, and role-scoped
// application queries.
package ats

import "errors"

// Business errors surfaced directly to the caller with no retry.
// ErrTransient classifies storage failures on the primary write; those abort
// the operation. Collaborator (mail, calendar) failures are logged at the
// call site and swallowed instead.
var (
	ErrAuthRequired         = errors.New("authentication required")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrDuplicateOrder       = errors.New("an active stage with this order already exists")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrTransient            = errors.New("transient storage error")
)
