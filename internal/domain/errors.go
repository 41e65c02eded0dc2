package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInvalidFuelPrice wraps ErrInvalidParameter so callers can match either.
var ErrInvalidFuelPrice = fmt.Errorf("%w: fuel price must be a finite, non-negative number", ErrInvalidParameter)

var ErrStopNotFound = errors.New("stop not found")
