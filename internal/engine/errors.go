package engine

import "errors"

// Malformed-input sentinels. The embedding layer maps these to validation
// errors before any search begins; "no valid schedule exists" is never an
// error, it is an empty result.
var (
	ErrInvalidDays       = errors.New("invalid day set")
	ErrInvalidInterval   = errors.New("invalid time interval")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrNoCourses         = errors.New("at least one required course is needed")
	ErrNoSections        = errors.New("required course has no candidate sections")
	ErrInvalidTopK       = errors.New("topK must be positive")
	ErrUnknownPreference = errors.New("unknown preference term")
)
