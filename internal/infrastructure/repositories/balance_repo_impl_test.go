package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
)

func TestBalanceRepository_CreditAndTransfer(t *testing.T) {
	db := newTestDB(t)
	createBalanceTables(t, db)
	repo := NewBalanceRepository(db)
	ctx := context.Background()

	donor := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	farmer := "0x1111111111111111111111111111111111111111"

	// Unknown addresses read as zero-balance accounts.
	acct, err := repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "0", acct.Balance)

	require.NoError(t, repo.Credit(ctx, donor, "100000000000000000000"))
	require.NoError(t, repo.Credit(ctx, donor, "11000000000000000000"))

	acct, err = repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "111000000000000000000", acct.Balance)

	require.NoError(t, repo.Transfer(ctx, donor, farmer, "60000000000000000000"))

	src, err := repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "51000000000000000000", src.Balance)

	dst, err := repo.GetByAddress(ctx, farmer)
	require.NoError(t, err)
	require.Equal(t, "60000000000000000000", dst.Balance)
}

func TestBalanceRepository_TransferInsufficientHasNoEffect(t *testing.T) {
	db := newTestDB(t)
	createBalanceTables(t, db)
	repo := NewBalanceRepository(db)
	ctx := context.Background()

	donor := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	farmer := "0x1111111111111111111111111111111111111111"

	require.NoError(t, repo.Credit(ctx, donor, "5"))

	err := repo.Transfer(ctx, donor, farmer, "10")
	require.ErrorIs(t, err, domainerrors.ErrTransferFailed)

	src, err := repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "5", src.Balance)

	dst, err := repo.GetByAddress(ctx, farmer)
	require.NoError(t, err)
	require.Equal(t, "0", dst.Balance)
}

func TestDepositRepository_CreateAndExists(t *testing.T) {
	db := newTestDB(t)
	createBalanceTables(t, db)
	repo := NewDepositRepository(db)
	ctx := context.Background()

	txHash := "0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"

	exists, err := repo.ExistsByTxHash(ctx, txHash)
	require.NoError(t, err)
	require.False(t, exists)

	deposit := &entities.Deposit{
		TxHash:  txHash,
		Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Amount:  "100000000000000000000",
	}
	require.NoError(t, repo.Create(ctx, deposit))
	require.False(t, deposit.CreatedAt.IsZero())

	exists, err = repo.ExistsByTxHash(ctx, txHash)
	require.NoError(t, err)
	require.True(t, exists)

	// Same hash again violates the primary key.
	require.Error(t, repo.Create(ctx, &entities.Deposit{
		TxHash:  txHash,
		Address: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Amount:  "1",
	}))
}

func TestBalanceRepository_SelfTransferMovesNothing(t *testing.T) {
	db := newTestDB(t)
	createBalanceTables(t, db)
	repo := NewBalanceRepository(db)
	ctx := context.Background()

	donor := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	require.NoError(t, repo.Credit(ctx, donor, "100"))

	// A donor funding their own request pushes value to themselves; the
	// balance must come out unchanged, not inflated.
	require.NoError(t, repo.Transfer(ctx, donor, donor, "60"))

	acct, err := repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "100", acct.Balance)

	// The amount must still be covered, exactly as for a two-party transfer.
	err = repo.Transfer(ctx, donor, donor, "150")
	require.ErrorIs(t, err, domainerrors.ErrTransferFailed)

	acct, err = repo.GetByAddress(ctx, donor)
	require.NoError(t, err)
	require.Equal(t, "100", acct.Balance)
}
