package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/internal/usecases"
)

type DepositHandler struct {
	usecase *usecases.DepositUsecase
}

func NewDepositHandler(usecase *usecases.DepositUsecase) *DepositHandler {
	return &DepositHandler{usecase: usecase}
}

// SubmitDeposit credits a verified on-chain treasury payment
// POST /api/v1/deposits
func (h *DepositHandler) SubmitDeposit(c *gin.Context) {
	var req entities.SubmitDepositInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	deposit, err := h.usecase.SubmitDeposit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, deposit)
}

// GetBalance returns the treasury balance account for an address
// GET /api/v1/balances/:address
func (h *DepositHandler) GetBalance(c *gin.Context) {
	account, err := h.usecase.GetBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, account)
}
