package calculator

import (
	"errors"

	"windtunnel/geometry"
	"windtunnel/numeric"
)

var (
	ErrAngleNotFound  = errors.New("angle not found")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnknownCpMode  = errors.New("unknown cp mode")

	// re-exported so callers only need this package for errors.Is
	ErrInsufficientPoints  = numeric.ErrInsufficientPoints
	ErrLengthMismatch      = numeric.ErrLengthMismatch
	ErrInvalidGeometry     = geometry.ErrInvalidGeometry
	ErrOutOfBoundsGeometry = geometry.ErrOutOfBoundsGeometry
)
