package screening

import "vigil/pkg/domainerrors"

// Errors surfaced to callers. Per-candidate adjudication failures are never
// errors; they degrade that one candidate and show up in its explanation.
var (
	// ErrInvalidQuery means no name tokens survived normalization.
	ErrInvalidQuery = domainerrors.New(domainerrors.CodeValidation,
		"query contains no usable name tokens")

	// ErrStoreUnavailable means the watchlist store cannot serve lookups.
	// Screening without list data is not degradable.
	ErrStoreUnavailable = domainerrors.New(domainerrors.CodeUnavailable,
		"watchlist record store unavailable")
)
