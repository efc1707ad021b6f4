package finance

import "errors"

var (
	// ErrNoPlanLoaded is returned when a mutation runs before Load succeeded.
	ErrNoPlanLoaded = errors.New("no business plan loaded")

	// ErrPlanNotFound wraps a store miss during Load.
	ErrPlanNotFound = errors.New("business plan not found")

	// ErrDocumentNotFound is returned by AddPayment when the target document
	// id does not exist in the loaded plan.
	ErrDocumentNotFound = errors.New("document not found")
)
