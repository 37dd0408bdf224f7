package model

import "errors"

// Error taxonomy shared by the calculator and its callers. All three indicate
// caller misuse or bad upstream data and are never worth retrying.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidParameter = errors.New("invalid parameter")
)
