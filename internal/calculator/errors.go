package calculator

import "VolSentinel/internal/model"

// Sentinel errors returned (wrapped) by every calculator entry point.
// Match them with errors.Is.
var (
	ErrInsufficientData = model.ErrInsufficientData
	ErrInvalidPrice     = model.ErrInvalidPrice
	ErrInvalidParameter = model.ErrInvalidParameter
)
