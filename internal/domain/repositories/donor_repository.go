package repositories

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
)

// DonorRepository defines donor data operations
type DonorRepository interface {
	Create(ctx context.Context, donor *entities.Donor) error
	GetByAddress(ctx context.Context, address string) (*entities.Donor, error)
	// GetByAddressForUpdate reads the donor under a row lock held for the
	// surrounding transaction; funding derives counts from this read.
	GetByAddressForUpdate(ctx context.Context, address string) (*entities.Donor, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Donor, int64, error)
	Exists(ctx context.Context, address string) (bool, error)
	MarkVerified(ctx context.Context, address string) error
	// ApplyDisbursement adds amount (wei, decimal string) to the donor's
	// running total, increments the disbursement count and stores the
	// recalculated reputation score.
	ApplyDisbursement(ctx context.Context, address string, amount string, newCount, newScore int) error
}
