package modulation

import (
	"errors"
	"fmt"
)

// Errors returned by the wah processors.
var (
	ErrInvalidParameter = errors.New("modulation: invalid parameter")
	ErrPedalNotManual   = errors.New("modulation: pedal position can only be set in manual mode")
	ErrLengthMismatch   = errors.New("modulation: destination and source lengths differ")
)

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
