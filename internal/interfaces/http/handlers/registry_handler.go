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

type RegistryHandler struct {
	usecase *usecases.RegistryUsecase
}

func NewRegistryHandler(usecase *usecases.RegistryUsecase) *RegistryHandler {
	return &RegistryHandler{usecase: usecase}
}

// RegisterFarmer registers a new farmer identity
// POST /api/v1/farmers/register
func (h *RegistryHandler) RegisterFarmer(c *gin.Context) {
	var req entities.RegisterFarmerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	farmer, err := h.usecase.RegisterFarmer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, farmer)
}

// RegisterDonor registers a new donor identity
// POST /api/v1/donors/register
func (h *RegistryHandler) RegisterDonor(c *gin.Context) {
	var req entities.RegisterDonorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	donor, err := h.usecase.RegisterDonor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, donor)
}

// ListFarmers lists registered farmers
// GET /api/v1/farmers
func (h *RegistryHandler) ListFarmers(c *gin.Context) {
	page, limit := paginationQuery(c)

	farmers, meta, err := h.usecase.ListFarmers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"farmers":    farmers,
		"pagination": meta,
	})
}

// ListDonors lists registered donors
// GET /api/v1/donors
func (h *RegistryHandler) ListDonors(c *gin.Context) {
	page, limit := paginationQuery(c)

	donors, meta, err := h.usecase.ListDonors(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"donors":     donors,
		"pagination": meta,
	})
}

// GetFarmer returns one farmer's full record
// GET /api/v1/farmers/:address
func (h *RegistryHandler) GetFarmer(c *gin.Context) {
	farmer, err := h.usecase.GetFarmerStats(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, farmer)
}

// GetDonor returns one donor's full record
// GET /api/v1/donors/:address
func (h *RegistryHandler) GetDonor(c *gin.Context) {
	donor, err := h.usecase.GetDonorStats(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, donor)
}

// GetFarmerRegistered reports whether an address has a farmer record
// GET /api/v1/farmers/:address/registered
func (h *RegistryHandler) GetFarmerRegistered(c *gin.Context) {
	registered, err := h.usecase.IsFarmerRegistered(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registered": registered})
}

// GetDonorRegistered reports whether an address has a donor record
// GET /api/v1/donors/:address/registered
func (h *RegistryHandler) GetDonorRegistered(c *gin.Context) {
	registered, err := h.usecase.IsDonorRegistered(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registered": registered})
}

func paginationQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
