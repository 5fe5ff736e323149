package handlers

import (
	"net/http"

	"storage-search-service/internal/api/dto"
	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"
	"storage-search-service/internal/ports"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ResultHandler serves the most recently persisted result set.
type ResultHandler struct {
	Store ports.ResultStore
}

func (h *ResultHandler) Latest(w http.ResponseWriter, r *http.Request) {
	results, err := h.Store.LatestResults(r.Context())
	if eris.Is(err, domain.ErrNoResults) {
		writeError(w, r, http.StatusNotFound, "no results stored yet")
		return
	}
	if err != nil {
		zap.L().Error("latest results failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SearchResponse{Results: toLocationResultResponses(results)})
}
