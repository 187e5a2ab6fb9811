package usecases

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/domain/errors"
	domainRepos "farm-bridge.backend/internal/domain/repositories"
	"farm-bridge.backend/internal/infrastructure/blockchain"
	"farm-bridge.backend/pkg/logger"
)

// DepositVerifier confirms an on-chain treasury payment and reports its
// sender and value.
type DepositVerifier interface {
	VerifyDeposit(ctx context.Context, txHash string) (sender string, value *big.Int, err error)
}

// DepositUsecase credits verified on-chain treasury payments to donor
// balance accounts.
type DepositUsecase struct {
	donorRepo   domainRepos.DonorRepository
	balanceRepo domainRepos.BalanceRepository
	depositRepo domainRepos.DepositRepository
	eventRepo   domainRepos.LedgerEventRepository
	uow         domainRepos.UnitOfWork
	verifier    DepositVerifier
}

func NewDepositUsecase(
	donorRepo domainRepos.DonorRepository,
	balanceRepo domainRepos.BalanceRepository,
	depositRepo domainRepos.DepositRepository,
	eventRepo domainRepos.LedgerEventRepository,
	uow domainRepos.UnitOfWork,
	verifier DepositVerifier,
) *DepositUsecase {
	return &DepositUsecase{
		donorRepo:   donorRepo,
		balanceRepo: balanceRepo,
		depositRepo: depositRepo,
		eventRepo:   eventRepo,
		uow:         uow,
		verifier:    verifier,
	}
}

// SubmitDeposit verifies the transaction on chain and credits its value to
// the submitting donor. A transaction hash is credited at most once, and the
// on-chain sender must be the submitting address.
func (uc *DepositUsecase) SubmitDeposit(ctx context.Context, input entities.SubmitDepositInput) (*entities.Deposit, error) {
	if !blockchain.IsValidAddress(input.Address) {
		return nil, errors.BadRequest("invalid address")
	}
	address := blockchain.NormalizeAddress(input.Address)

	registered, err := uc.donorRepo.Exists(ctx, address)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if !registered {
		return nil, errors.Unauthorized("caller is not a registered donor")
	}

	sender, value, err := uc.verifier.VerifyDeposit(ctx, input.TxHash)
	if err != nil {
		return nil, errors.TransferFailed(err.Error())
	}
	if sender != address {
		return nil, errors.Unauthorized("transaction was not sent by this address")
	}

	deposit := &entities.Deposit{
		TxHash:  input.TxHash,
		Address: address,
		Amount:  value.String(),
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.depositRepo.ExistsByTxHash(ctx, input.TxHash)
		if err != nil {
			return errors.InternalError(err)
		}
		if exists {
			return errors.DepositExists("transaction already credited")
		}

		if err := uc.depositRepo.Create(ctx, deposit); err != nil {
			return errors.InternalError(err)
		}
		if err := uc.balanceRepo.Credit(ctx, address, deposit.Amount); err != nil {
			return errors.InternalError(err)
		}

		event := &entities.LedgerEvent{
			EventType: entities.LedgerEventDepositCredited,
			Actor:     address,
			Subject:   address,
			Payload: entities.DepositCreditedPayload{
				Address: address,
				Amount:  deposit.Amount,
				TxHash:  deposit.TxHash,
			},
		}
		if err := uc.eventRepo.Append(ctx, event); err != nil {
			return errors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "deposit credited",
		zap.String("address", address),
		zap.String("tx_hash", deposit.TxHash),
		zap.String("amount", deposit.Amount),
	)
	return deposit, nil
}

// GetBalance returns the treasury balance account for an address. Unknown
// addresses get a zero-valued account, mirroring the zero-struct pattern of
// the point lookups.
func (uc *DepositUsecase) GetBalance(ctx context.Context, address string) (*entities.BalanceAccount, error) {
	if !blockchain.IsValidAddress(address) {
		return nil, errors.BadRequest("invalid address")
	}
	account, err := uc.balanceRepo.GetByAddress(ctx, blockchain.NormalizeAddress(address))
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return account, nil
}
