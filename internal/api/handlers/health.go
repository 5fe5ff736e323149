package handlers

import (
	"fmt"
	"net/http"

	"storage-search-service/internal/services"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}

type helloResponse struct {
	Message string      `json:"message"`
	Limits  helloLimits `json:"limits"`
}

// A zero MaxListingsPerLocation means the per-location cap is off.
type helloLimits struct {
	MaxListingsPerLocation int `json:"max_listings_per_location"`
	MaxVehicles            int `json:"max_vehicles"`
}

// Hello answers GET / with usage text and the limits searches run under,
// so a client can tell why an oversized request gets a 422.
func Hello(opts services.FitOptions) http.HandlerFunc {
	res := helloResponse{
		Message: helloMessage(opts),
		Limits: helloLimits{
			MaxListingsPerLocation: opts.MaxListingsPerLocation,
			MaxVehicles:            opts.VehicleLimit(),
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, res)
	}
}

func helloMessage(opts services.FitOptions) string {
	msg := "storage search: POST a JSON array of {length, quantity} to / or /search. " +
		fmt.Sprintf("Requests for more than %d vehicles are rejected with 422", opts.VehicleLimit())
	if opts.MaxListingsPerLocation > 0 {
		msg += fmt.Sprintf(", as are searches where a location has more than %d listings", opts.MaxListingsPerLocation)
	}
	return msg + "."
}
