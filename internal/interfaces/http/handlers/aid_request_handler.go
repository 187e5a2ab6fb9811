package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/internal/usecases"
)

type AidRequestHandler struct {
	usecase *usecases.AidRequestUsecase
}

func NewAidRequestHandler(usecase *usecases.AidRequestUsecase) *AidRequestHandler {
	return &AidRequestHandler{usecase: usecase}
}

// CreateAidRequest creates a new aid request
// POST /api/v1/aid-requests
func (h *AidRequestHandler) CreateAidRequest(c *gin.Context) {
	var req entities.CreateAidRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.usecase.RequestAid(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// FundAidRequest applies a donor contribution to a request
// POST /api/v1/aid-requests/:id/fund
func (h *AidRequestHandler) FundAidRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.InvalidRequestID("invalid aid request id"))
		return
	}

	var req entities.FundAidRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.usecase.FundAidRequest(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// ListAidRequests returns every aid request in creation order, optionally
// narrowed to one farmer
// GET /api/v1/aid-requests
func (h *AidRequestHandler) ListAidRequests(c *gin.Context) {
	var (
		requests []*entities.AidRequest
		err      error
	)

	if farmer := c.Query("farmer"); farmer != "" {
		requests, err = h.usecase.ListAidRequestsByFarmer(c.Request.Context(), farmer)
	} else {
		requests, err = h.usecase.GetAllAidRequests(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// GetAidRequest returns one aid request
// GET /api/v1/aid-requests/:id
func (h *AidRequestHandler) GetAidRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.InvalidRequestID("invalid aid request id"))
		return
	}

	request, err := h.usecase.GetAidRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}
