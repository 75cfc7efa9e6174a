package seed

import "errors"

var (
	// ErrUnknownStrategy is returned for an unrecognized strategy name
	ErrUnknownStrategy = errors.New("unknown seed strategy")

	// ErrEmptyInput is returned when the training set is empty or the
	// feature and label counts disagree
	ErrEmptyInput = errors.New("empty or mismatched training input")
)
