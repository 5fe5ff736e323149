package domain

import "github.com/rotisserie/eris"

var (
	// A location holds more listings than the configured search limit.
	ErrTooManyListings = eris.New("too many listings at location")

	// A request expands to more vehicles than the configured limit.
	ErrTooManyVehicles = eris.New("too many vehicles requested")

	// No result set has been persisted yet.
	ErrNoResults = eris.New("no results stored")
)
