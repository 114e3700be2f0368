package sim

import "errors"

var (
	// ErrMutationDuringIteration is returned by registry mutations attempted
	// from inside ForEach.
	ErrMutationDuringIteration = errors.New("sim: registry mutated during iteration")
	ErrUnknownEntity           = errors.New("sim: unknown entity")
	ErrInvalidRadius           = errors.New("sim: radius must be positive")
	ErrNilProxy                = errors.New("sim: nil proxy")
)
