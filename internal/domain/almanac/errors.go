package almanac

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotWeekAnchor = errors.New("date is not a week anchor")
)
