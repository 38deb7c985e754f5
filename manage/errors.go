package manage

import (
	"errors"
	"fmt"
)

// Error kinds returned by the profile service. Callers classify with
// errors.Is: validation and not-found map to 4xx responses, conflict is
// retryable by the caller, storage maps to 5xx.
var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation failure")

	// ErrNotFound marks an absent user document or an absent item within a
	// section for update/delete.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a write that lost the version race too many times.
	ErrConflict = errors.New("write conflict")

	// ErrStorage marks a transport or serialization fault from the store.
	ErrStorage = errors.New("storage failure")
)

func validationErr(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, msg)
}

func notFoundErr(resource, id string) error {
	return fmt.Errorf("%w: %s with ID %s", ErrNotFound, resource, id)
}

func conflictErr(userID, section string) error {
	return fmt.Errorf("%w: concurrent writes on section %s for user %s", ErrConflict, section, userID)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
