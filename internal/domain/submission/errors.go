package submission

import "errors"

// Sentinel error kinds for this package. Parse failures are ordinary user
// input noise and must stay distinguishable from a valid low-score entry.
var (
	ErrUnrecognizedSubmission = errors.New("unrecognized submission")
	ErrBadScore               = errors.New("unrecognized score token")
)
