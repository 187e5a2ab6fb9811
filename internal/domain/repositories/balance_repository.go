package repositories

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
)

// BalanceRepository defines treasury balance account operations
type BalanceRepository interface {
	GetByAddress(ctx context.Context, address string) (*entities.BalanceAccount, error)
	Credit(ctx context.Context, address string, amount string) error
	// Transfer moves amount (wei, decimal string) from one account to
	// another. It must fail without effect when the source balance is
	// insufficient.
	Transfer(ctx context.Context, from, to string, amount string) error
}

// DepositRepository defines credited on-chain deposit records
type DepositRepository interface {
	Create(ctx context.Context, deposit *entities.Deposit) error
	ExistsByTxHash(ctx context.Context, txHash string) (bool, error)
}
