package domain

import "fmt"

// Width assumed for every vehicle. Spaces are multiples of this width and
// vehicles park in the same direction, so only length matters for fitting.
const DefaultVehicleWidth = 10.0

// One `{length, quantity}` entry of a search request.
// Fields are pointers so a missing value can be told apart from zero.
type VehicleRequest struct {
	Length   *float64
	Quantity *int
}

// A single vehicle that needs storage for the duration of one request.
type RequestedVehicle struct {
	ID        int
	Length    float64
	Width     float64
	TotalArea float64
}

func NewRequestedVehicle(id int, length float64) RequestedVehicle {
	return RequestedVehicle{
		ID:        id,
		Length:    length,
		Width:     DefaultVehicleWidth,
		TotalArea: DefaultVehicleWidth * length,
	}
}

// VehicleRequestError reports a malformed entry in a search request.
// It is a client error: the search never runs when one is returned.
type VehicleRequestError struct {
	Index  int
	Reason string
}

func (e *VehicleRequestError) Error() string {
	return fmt.Sprintf("vehicle entry %d: %s", e.Index, e.Reason)
}
