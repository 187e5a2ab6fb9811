package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/internal/usecases"
)

type AuthHandler struct {
	usecase *usecases.AuthUsecase
}

func NewAuthHandler(usecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: usecase}
}

type ownerLoginRequest struct {
	OwnerKey string `json:"ownerKey" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// OwnerLogin exchanges the owner key for a token pair
// POST /api/v1/auth/owner/login
func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var req ownerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pair, err := h.usecase.OwnerLogin(c.Request.Context(), req.OwnerKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/owner/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pair, err := h.usecase.RefreshOwnerSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pair)
}
