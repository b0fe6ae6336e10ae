package normalize

import "errors"

// Sentinel error kinds shared by the analysis packages; callers branch with
// errors.Is rather than string matching.
var (
	// ErrBadConfig marks a malformed request (unknown method, invalid
	// threshold) rejected before any computation starts.
	ErrBadConfig = errors.New("invalid analysis configuration")

	// ErrInsufficientData marks a population too small or too sparse for the
	// requested comparison. It is recoverable, not fatal.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrRunMismatch marks an attempt to compare vectors from different
	// normalization runs.
	ErrRunMismatch = errors.New("vectors come from different normalization runs")
)
