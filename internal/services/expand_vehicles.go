package services

import (
	"storage-search-service/internal/domain"

	"github.com/rotisserie/eris"
)

// Vehicle limit applied when none is configured.
const DefaultMaxVehicles = 10000

// ExpandVehicles turns `{length, quantity}` entries into one RequestedVehicle
// per unit. Vehicle ids are assigned 1..N in expansion order.
// A zero quantity contributes no vehicles.
//
// Every entry is validated and the total quantity is checked against
// maxVehicles (DefaultMaxVehicles when not positive) before anything is
// allocated, so an oversized request fails with ErrTooManyVehicles instead
// of exhausting memory.
func ExpandVehicles(entries []domain.VehicleRequest, maxVehicles int) ([]domain.RequestedVehicle, error) {
	if maxVehicles <= 0 {
		maxVehicles = DefaultMaxVehicles
	}

	total := 0
	for i, e := range entries {
		if e.Length == nil || e.Quantity == nil {
			return nil, eris.Wrap(
				&domain.VehicleRequestError{Index: i, Reason: "each entry must have length and quantity"},
				"expand vehicles",
			)
		}
		if *e.Quantity < 0 {
			return nil, eris.Wrap(
				&domain.VehicleRequestError{Index: i, Reason: "quantity must not be negative"},
				"expand vehicles",
			)
		}
		if *e.Length <= 0 {
			return nil, eris.Wrap(
				&domain.VehicleRequestError{Index: i, Reason: "length must be positive"},
				"expand vehicles",
			)
		}

		// Compared against the remaining room so the sum never overflows.
		if *e.Quantity > maxVehicles-total {
			return nil, eris.Wrapf(
				domain.ErrTooManyVehicles,
				"expand vehicles: entry %d brings the request above %d vehicles",
				i, maxVehicles,
			)
		}
		total += *e.Quantity
	}

	vehicles := make([]domain.RequestedVehicle, 0, total)
	for _, e := range entries {
		for range *e.Quantity {
			vehicles = append(vehicles, domain.NewRequestedVehicle(len(vehicles)+1, *e.Length))
		}
	}

	return vehicles, nil
}

// RequestedLengths returns the length of each vehicle, in order.
func RequestedLengths(vehicles []domain.RequestedVehicle) []float64 {
	lengths := make([]float64, 0, len(vehicles))
	for _, v := range vehicles {
		lengths = append(lengths, v.Length)
	}
	return lengths
}
