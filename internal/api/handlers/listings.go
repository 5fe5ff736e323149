package handlers

import (
	"net/http"

	"storage-search-service/internal/api/dto"
	"storage-search-service/internal/platform/obs"
	"storage-search-service/internal/ports"

	"go.uber.org/zap"
)

// ListingHandler exposes the loaded listings read-only.
type ListingHandler struct {
	Repo ports.ListingRepository
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Repo.ListListings(r.Context())
	if err != nil {
		zap.L().Error("list listings failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListListingsResponse{
		Listings: make([]dto.ListingResponse, 0, len(listings)),
	}
	for _, l := range listings {
		res.Listings = append(res.Listings, dto.ListingResponse{
			ID:           l.ID,
			LocationID:   l.LocationID,
			Length:       l.Length,
			PriceInCents: l.PriceInCents,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
