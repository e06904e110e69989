package cms

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrContentBlockNotFound indicates a content block was not found
	ErrContentBlockNotFound = errors.New("content block not found")

	// ErrTeamMemberNotFound indicates a team member was not found
	ErrTeamMemberNotFound = errors.New("team member not found")

	// ErrEnrollmentNotFound indicates an enrollment record was not found
	ErrEnrollmentNotFound = errors.New("enrollment record not found")

	// ErrDuplicateKey indicates a content block key is already taken
	ErrDuplicateKey = errors.New("content block key already exists")

	// ErrDuplicateEnrollment indicates an enrollment record already exists
	// for the same (school, academic year) pair
	ErrDuplicateEnrollment = errors.New("enrollment record already exists for school and academic year")

	// ErrMediaStoreNotConfigured indicates no media store was wired in
	ErrMediaStoreNotConfigured = errors.New("media store not configured")

	// ErrMailerNotConfigured indicates no mailer was wired in
	ErrMailerNotConfigured = errors.New("mailer not configured")
)

// ValidationError reports malformed, missing, or out-of-enum input. It is a
// client error and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UploadError reports a failure from the media host, carrying the adapter's
// own diagnostic. The core never retries uploads; retry policy, if any, is
// the caller's responsibility.
type UploadError struct {
	Backend string
	Op      string
	Err     error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media operation %s failed on backend %s: %v", e.Op, e.Backend, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failure from the email adapter. A partial failure
// within one recipient list surfaces as a single DeliveryError, not itemized
// per recipient.
type DeliveryError struct {
	Op         string
	Recipients int
	Err        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail operation %s failed for %d recipient(s): %v", e.Op, e.Recipients, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is any of the entity not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContentBlockNotFound) ||
		errors.Is(err, ErrTeamMemberNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound)
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrDuplicateEnrollment)
}
