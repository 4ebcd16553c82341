package core

import "errors"

var (
	// ErrInvalidArgument is returned when a layout or configuration value is out of its domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange is returned by InstanceStore accessors for indices outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")
)
