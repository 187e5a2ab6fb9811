package usecases

import (
	"context"

	"farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/pkg/crypto"
	"farm-bridge.backend/pkg/jwt"
	"farm-bridge.backend/pkg/logger"
)

// AuthUsecase issues owner sessions. The owner is the single privileged
// principal configured at bootstrap; there is no rotation or transfer.
type AuthUsecase struct {
	jwtService   *jwt.JWTService
	ownerAddress string
	ownerKeyHash string
}

func NewAuthUsecase(jwtService *jwt.JWTService, ownerAddress, ownerKeyHash string) *AuthUsecase {
	return &AuthUsecase{
		jwtService:   jwtService,
		ownerAddress: ownerAddress,
		ownerKeyHash: ownerKeyHash,
	}
}

// OwnerLogin exchanges the shared owner key for a token pair.
func (uc *AuthUsecase) OwnerLogin(ctx context.Context, ownerKey string) (*jwt.TokenPair, error) {
	if uc.ownerKeyHash == "" || !crypto.CheckSecret(ownerKey, uc.ownerKeyHash) {
		return nil, errors.NewAppError(401, errors.CodeUnauthorized, "invalid owner key", errors.ErrInvalidCredentials)
	}

	pair, err := uc.jwtService.GenerateTokenPair(uc.ownerAddress, jwt.RoleOwner)
	if err != nil {
		return nil, errors.InternalError(err)
	}

	logger.Info(ctx, "owner session issued")
	return pair, nil
}

// RefreshOwnerSession exchanges a valid refresh token for a new token pair.
func (uc *AuthUsecase) RefreshOwnerSession(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.Role != jwt.RoleOwner {
		return nil, errors.NewAppError(401, errors.CodeUnauthorized, "invalid refresh token", errors.ErrInvalidCredentials)
	}

	pair, err := uc.jwtService.GenerateTokenPair(claims.Address, claims.Role)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return pair, nil
}
