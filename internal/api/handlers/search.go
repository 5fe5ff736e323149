package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storage-search-service/internal/api/dto"
	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/metrics"
	"storage-search-service/internal/platform/obs"
	"storage-search-service/internal/ports"
	"storage-search-service/internal/services"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const maxSearchBodyBytes = 1 << 20

type SearchHandler struct {
	Repo    ports.ListingRepository
	Results ports.ResultStore
	Options services.FitOptions
}

// Search decodes the vehicle list, runs the storage search, and replies with
// the per-location cheapest combinations sorted by price.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBodyBytes)
	defer r.Body.Close()

	var entries []dto.VehicleEntry

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&entries); err != nil || entries == nil {
		metrics.Searches.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "body must be a JSON array of {length, quantity} objects")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		metrics.Searches.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON array")
		return
	}

	req := services.SearchStorageRequest{
		Vehicles: make([]domain.VehicleRequest, 0, len(entries)),
		Options:  h.Options,
	}
	for _, e := range entries {
		req.Vehicles = append(req.Vehicles, domain.VehicleRequest{Length: e.Length, Quantity: e.Quantity})
	}

	results, err := services.SearchStorage(r.Context(), req, h.Repo, h.Results)
	if err != nil {
		h.writeSearchError(w, r, err)
		return
	}

	metrics.Searches.WithLabelValues("ok").Inc()
	writeJSON(w, r, http.StatusOK, dto.SearchResponse{Results: toLocationResultResponses(results)})
}

func (h *SearchHandler) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *domain.VehicleRequestError
	switch {
	case eris.As(err, &reqErr):
		metrics.Searches.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, reqErr.Error())
	case eris.Is(err, domain.ErrTooManyListings):
		metrics.Searches.WithLabelValues("limit").Inc()
		writeError(w, r, http.StatusUnprocessableEntity, "a location has too many listings to search exhaustively")
	case eris.Is(err, domain.ErrTooManyVehicles):
		metrics.Searches.WithLabelValues("limit").Inc()
		writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("request asks for more than %d vehicles", h.Options.VehicleLimit()))
	default:
		metrics.Searches.WithLabelValues("error").Inc()
		zap.L().Error("storage search failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
