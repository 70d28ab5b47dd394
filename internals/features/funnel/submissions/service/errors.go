// file: internals/features/funnel/submissions/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Typed error kinds surfaced to the handlers. Validation failures are
// never partially persisted; identity misses are recoverable (the caller
// creates a fresh record, matching the old funnel's lenient behavior).
var (
	ErrValidation       = errors.New("validation_error")
	ErrIdentityNotFound = errors.New("identity_not_found")
)

// Reason codes carried inside ErrValidation, stable for the front end.
const (
	ReasonMissingRequiredFields         = "missing_required_fields"
	ReasonDeclarationOrSignatureMissing = "declaration_or_signature_missing"
	ReasonInvalidStep                   = "invalid_step"
)

func validationErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
