package usecases

import (
	"context"

	"go.uber.org/zap"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/domain/errors"
	domainRepos "farm-bridge.backend/internal/domain/repositories"
	"farm-bridge.backend/internal/infrastructure/blockchain"
	"farm-bridge.backend/pkg/logger"
	"farm-bridge.backend/pkg/metrics"
	"farm-bridge.backend/pkg/utils"
)

// AidRequestUsecase creates funding requests and applies contributions. All
// mutations of one funding event run inside a single unit of work with the
// request row locked, so an operation either applies completely or not at
// all.
type AidRequestUsecase struct {
	requestRepo domainRepos.AidRequestRepository
	farmerRepo  domainRepos.FarmerRepository
	donorRepo   domainRepos.DonorRepository
	balanceRepo domainRepos.BalanceRepository
	eventRepo   domainRepos.LedgerEventRepository
	statsRepo   domainRepos.StatsRepository
	uow         domainRepos.UnitOfWork
	metrics     *metrics.Metrics
}

func NewAidRequestUsecase(
	requestRepo domainRepos.AidRequestRepository,
	farmerRepo domainRepos.FarmerRepository,
	donorRepo domainRepos.DonorRepository,
	balanceRepo domainRepos.BalanceRepository,
	eventRepo domainRepos.LedgerEventRepository,
	statsRepo domainRepos.StatsRepository,
	uow domainRepos.UnitOfWork,
	m *metrics.Metrics,
) *AidRequestUsecase {
	return &AidRequestUsecase{
		requestRepo: requestRepo,
		farmerRepo:  farmerRepo,
		donorRepo:   donorRepo,
		balanceRepo: balanceRepo,
		eventRepo:   eventRepo,
		statsRepo:   statsRepo,
		uow:         uow,
		metrics:     m,
	}
}

// RequestAid creates a new aid request for a registered farmer. The target
// amount is fixed at creation and must be strictly positive.
func (uc *AidRequestUsecase) RequestAid(ctx context.Context, input entities.CreateAidRequestInput) (*entities.AidRequest, error) {
	farmer := blockchain.NormalizeAddress(input.FarmerAddress)

	registered, err := uc.farmerRepo.Exists(ctx, farmer)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if !registered {
		return nil, errors.Unauthorized("caller is not a registered farmer")
	}

	amount, err := utils.ParseWei(input.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, errors.InvalidAmount("requested amount must be greater than zero")
	}

	request := &entities.AidRequest{
		FarmerAddress:   farmer,
		Name:            input.Name,
		Purpose:         input.Purpose,
		AmountRequested: amount.String(),
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.Create(ctx, request); err != nil {
			return errors.InternalError(err)
		}
		event := &entities.LedgerEvent{
			EventType: entities.LedgerEventAidRequested,
			Actor:     farmer,
			Subject:   farmer,
			Payload: entities.AidRequestedPayload{
				RequestID:       request.ID,
				Farmer:          farmer,
				Name:            request.Name,
				Purpose:         request.Purpose,
				AmountRequested: request.AmountRequested,
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

	uc.metrics.AidRequests.Inc()
	logger.Info(ctx, "aid requested",
		zap.Uint64("request_id", request.ID),
		zap.String("farmer", farmer),
		zap.String("amount", request.AmountRequested),
	)
	return request, nil
}

// FundAidRequest applies one donor contribution to an open request. On
// acceptance the value moves from the donor's to the farmer's balance
// account, the request total grows, the fulfillment flag is derived, donor
// and farmer stats advance, the donor's reputation is re-derived, the global
// counter grows and the funding events are appended, all in one transaction.
// Every mutated row is read under a FOR UPDATE lock, locking the request
// first and then balances, donor, farmer and counters, so concurrent
// contributions serialize per record instead of overwriting each other.
func (uc *AidRequestUsecase) FundAidRequest(ctx context.Context, requestID uint64, input entities.FundAidRequestInput) (*entities.AidRequest, error) {
	donorAddr := blockchain.NormalizeAddress(input.DonorAddress)

	registered, err := uc.donorRepo.Exists(ctx, donorAddr)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if !registered {
		return nil, errors.Unauthorized("caller is not a registered donor")
	}

	amount, err := utils.ParseWei(input.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, errors.ZeroAmount("contribution must be greater than zero")
	}

	var result *entities.AidRequest
	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		request, err := uc.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if err == errors.ErrInvalidRequestID {
				return errors.InvalidRequestID("aid request not found")
			}
			return errors.InternalError(err)
		}
		if request.Fulfilled {
			return errors.AlreadyFulfilled("aid request already fulfilled")
		}

		// Push payment to the farmer. A failed transfer rejects the whole
		// funding operation.
		if err := uc.balanceRepo.Transfer(ctx, donorAddr, request.FarmerAddress, amount.String()); err != nil {
			if err == errors.ErrTransferFailed {
				return errors.TransferFailed("insufficient donor balance")
			}
			return errors.InternalError(err)
		}

		// Over-funding is accepted and not capped; fulfilled is a pure
		// function of the new total.
		newFunded := utils.AddWei(request.AmountFunded, amount.String())
		fulfilled := utils.MustParseWei(newFunded).Cmp(utils.MustParseWei(request.AmountRequested)) >= 0
		if err := uc.requestRepo.ApplyFunding(ctx, requestID, newFunded, fulfilled); err != nil {
			return errors.InternalError(err)
		}

		donor, err := uc.donorRepo.GetByAddressForUpdate(ctx, donorAddr)
		if err != nil {
			return errors.InternalError(err)
		}
		newCount := donor.SuccessfulDisbursements + 1
		newScore := ReputationScore(newCount)
		if err := uc.donorRepo.ApplyDisbursement(ctx, donorAddr, amount.String(), newCount, newScore); err != nil {
			return errors.InternalError(err)
		}

		if err := uc.farmerRepo.ApplyDisbursement(ctx, request.FarmerAddress, amount.String()); err != nil {
			return errors.InternalError(err)
		}
		if err := uc.statsRepo.AddFundsDistributed(ctx, amount.String()); err != nil {
			return errors.InternalError(err)
		}

		fundedEvent := &entities.LedgerEvent{
			EventType: entities.LedgerEventAidFunded,
			Actor:     donorAddr,
			Subject:   request.FarmerAddress,
			Payload: entities.AidFundedPayload{
				RequestID: requestID,
				Donor:     donorAddr,
				Farmer:    request.FarmerAddress,
				Amount:    amount.String(),
				Fulfilled: fulfilled,
			},
		}
		if err := uc.eventRepo.Append(ctx, fundedEvent); err != nil {
			return errors.InternalError(err)
		}

		if newScore != donor.ReputationScore {
			reputationEvent := &entities.LedgerEvent{
				EventType: entities.LedgerEventReputationUpdated,
				Actor:     donorAddr,
				Subject:   donorAddr,
				Payload: entities.ReputationUpdatedPayload{
					Donor:    donorAddr,
					NewScore: newScore,
				},
			}
			if err := uc.eventRepo.Append(ctx, reputationEvent); err != nil {
				return errors.InternalError(err)
			}
		}

		result = request
		result.AmountFunded = newFunded
		result.Fulfilled = fulfilled
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Disbursements.Inc()
	uc.metrics.AddFundsWei(amount)
	logger.Info(ctx, "aid request funded",
		zap.Uint64("request_id", requestID),
		zap.String("donor", donorAddr),
		zap.String("amount", amount.String()),
		zap.Bool("fulfilled", result.Fulfilled),
	)
	return result, nil
}

// GetAllAidRequests returns every request in creation order. Filtering by
// status is a read-side concern left to the caller.
func (uc *AidRequestUsecase) GetAllAidRequests(ctx context.Context) ([]*entities.AidRequest, error) {
	requests, err := uc.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return requests, nil
}

// GetAidRequest returns one request by its sequential id.
func (uc *AidRequestUsecase) GetAidRequest(ctx context.Context, id uint64) (*entities.AidRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		if err == errors.ErrInvalidRequestID {
			return nil, errors.InvalidRequestID("aid request not found")
		}
		return nil, errors.InternalError(err)
	}
	return request, nil
}

// ListAidRequestsByFarmer returns a farmer's requests in creation order.
func (uc *AidRequestUsecase) ListAidRequestsByFarmer(ctx context.Context, farmer string) ([]*entities.AidRequest, error) {
	requests, err := uc.requestRepo.ListByFarmer(ctx, blockchain.NormalizeAddress(farmer))
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return requests, nil
}
