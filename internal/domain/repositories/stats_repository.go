package repositories

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
)

// StatsRepository defines the global running counter operations
type StatsRepository interface {
	Get(ctx context.Context) (*entities.ContractStats, error)
	IncrementDonors(ctx context.Context) error
	IncrementBeneficiaries(ctx context.Context) error
	// AddFundsDistributed adds amount (wei, decimal string) to the global
	// funds-distributed counter.
	AddFundsDistributed(ctx context.Context, amount string) error
}
