package handlers

import (
	"encoding/json"
	"net/http"

	"storage-search-service/internal/api/dto"
	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// WriteError is exported for the router's fallback handlers.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeError(w, r, status, msg)
}

func toLocationResultResponses(results []domain.LocationResult) []dto.LocationResultResponse {
	out := make([]dto.LocationResultResponse, 0, len(results))
	for _, res := range results {
		ids := res.ListingIDs
		if ids == nil {
			ids = []domain.ID{}
		}
		out = append(out, dto.LocationResultResponse{
			LocationID:        res.LocationID,
			ListingIDs:        ids,
			TotalPriceInCents: res.TotalPriceInCents,
		})
	}
	return out
}
