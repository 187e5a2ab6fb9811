package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/internal/usecases"
)

type StatsHandler struct {
	usecase *usecases.StatsUsecase
}

func NewStatsHandler(usecase *usecases.StatsUsecase) *StatsHandler {
	return &StatsHandler{usecase: usecase}
}

// GetContractStats returns the global running counters
// GET /api/v1/stats
func (h *StatsHandler) GetContractStats(c *gin.Context) {
	stats, err := h.usecase.GetContractStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListEvents returns the ledger event log in transition order
// GET /api/v1/events
func (h *StatsHandler) ListEvents(c *gin.Context) {
	page, limit := paginationQuery(c)

	events, meta, err := h.usecase.ListEvents(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"events":     events,
		"pagination": meta,
	})
}
