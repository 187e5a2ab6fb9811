package repositories

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
)

// FarmerRepository defines farmer data operations
type FarmerRepository interface {
	Create(ctx context.Context, farmer *entities.Farmer) error
	GetByAddress(ctx context.Context, address string) (*entities.Farmer, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Farmer, int64, error)
	Exists(ctx context.Context, address string) (bool, error)
	MarkVerified(ctx context.Context, address string) error
	// ApplyDisbursement adds amount (wei, decimal string) to the farmer's
	// running total and stamps the last disbursement date.
	ApplyDisbursement(ctx context.Context, address string, amount string) error
}
