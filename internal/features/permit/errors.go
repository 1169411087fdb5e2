package permit

import "errors"

// Sentinel errors for the approval workflow. Controllers map these to HTTP
// statuses; none of them indicate a mutation happened.
var (
	// ErrInvalidRoster - submit called with an empty approver roster
	ErrInvalidRoster = errors.New("approver roster must not be empty")

	// ErrValidation - create called with missing title/requester fields
	ErrValidation = errors.New("validation failed")

	// ErrMissingReason - reject requires a non-empty comment
	ErrMissingReason = errors.New("rejection requires a reason")

	// ErrNotCurrentApprover - actor is not the approver whose turn it is
	ErrNotCurrentApprover = errors.New("actor is not the current approver")

	// ErrAlreadyDecided - the current step already carries a decision
	ErrAlreadyDecided = errors.New("current step already decided")

	// ErrPermitFinalized - the permit is in a terminal state
	ErrPermitFinalized = errors.New("permit already finalized")

	// ErrConflict - optimistic concurrency check failed; caller should re-fetch
	ErrConflict = errors.New("permit was modified concurrently")

	// ErrNotFound - no permit with the given id
	ErrNotFound = errors.New("permit not found")

	// ErrDuplicateID - insert collided with an existing permit id
	ErrDuplicateID = errors.New("permit id already exists")
)
