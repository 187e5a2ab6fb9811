package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/interfaces/http/middleware"
	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/internal/usecases"
)

// AdminHandler exposes the owner-only verification operations.
type AdminHandler struct {
	usecase *usecases.RegistryUsecase
}

func NewAdminHandler(usecase *usecases.RegistryUsecase) *AdminHandler {
	return &AdminHandler{usecase: usecase}
}

// VerifyFarmer marks a farmer as verified
// PUT /api/v1/admin/farmers/:address/verify
func (h *AdminHandler) VerifyFarmer(c *gin.Context) {
	caller := c.GetString(middleware.CallerAddressKey)
	if caller == "" {
		response.Error(c, domainerrors.Unauthorized("missing caller identity"))
		return
	}

	farmer, err := h.usecase.VerifyFarmer(c.Request.Context(), caller, c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, farmer)
}

// VerifyDonor marks a donor as verified
// PUT /api/v1/admin/donors/:address/verify
func (h *AdminHandler) VerifyDonor(c *gin.Context) {
	caller := c.GetString(middleware.CallerAddressKey)
	if caller == "" {
		response.Error(c, domainerrors.Unauthorized("missing caller identity"))
		return
	}

	donor, err := h.usecase.VerifyDonor(c.Request.Context(), caller, c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, donor)
}
