package latentlab

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no
// additional information necessary. These errors are defined as global
// variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrNetNotFinalized   = Error{"Network has not been finalized"}
	ErrNetFinalized      = Error{"Network has already been finalized"}
	ErrNegativeIter      = Error{"Iteration is less than zero"}
	ErrNoHP              = Error{"HyperParameter is not present"}
	ErrNoInputs          = Error{"Node has no inputs"}
	ErrRegisterWrongType = Error{"Type is not recognized"}
	ErrRegisterNilReturn = Error{"Function return is nil"}

	// ErrNonFiniteCost is returned (wrapped) by Train when the training cost
	// becomes NaN or infinite. The run is aborted, not retried.
	ErrNonFiniteCost = Error{"Training cost is NaN or infinite"}
)

// NilArgError documents errors resulting from certain arguments provided to a
// function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError documents errors from slices of values that do not match
// the dimensions of the Network or Node they are given to.
type SizeMismatchError struct {
	Expected, Got int
	Context       string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size of %s does not match (expected %d, got %d)", err.Context, err.Expected, err.Got)
}
