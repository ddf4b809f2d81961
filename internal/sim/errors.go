package sim

import "errors"

// Domain errors for simulation setup and execution.
var (
	// ErrInvalidSweeps indicates a non-positive sweeps-per-temperature count.
	ErrInvalidSweeps = errors.New("sim: sweeps must be positive")

	// ErrInvalidSchedule indicates a malformed or empty temperature schedule.
	ErrInvalidSchedule = errors.New("sim: invalid temperature schedule")

	// ErrNonPositiveTemperature indicates a schedule entry the Glauber rule
	// cannot evaluate.
	ErrNonPositiveTemperature = errors.New("sim: temperatures must be positive")

	// ErrUnknownMode indicates an unrecognized simulation mode name.
	ErrUnknownMode = errors.New("sim: unknown mode")
)
