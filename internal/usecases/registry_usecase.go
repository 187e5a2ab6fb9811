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

// RegistryUsecase admits farmer and donor identities and gates owner
// verification.
type RegistryUsecase struct {
	farmerRepo domainRepos.FarmerRepository
	donorRepo  domainRepos.DonorRepository
	eventRepo  domainRepos.LedgerEventRepository
	statsRepo  domainRepos.StatsRepository
	uow        domainRepos.UnitOfWork
	metrics    *metrics.Metrics
	// ownerAddress is the single privileged principal, fixed at bootstrap.
	ownerAddress string
}

func NewRegistryUsecase(
	farmerRepo domainRepos.FarmerRepository,
	donorRepo domainRepos.DonorRepository,
	eventRepo domainRepos.LedgerEventRepository,
	statsRepo domainRepos.StatsRepository,
	uow domainRepos.UnitOfWork,
	m *metrics.Metrics,
	ownerAddress string,
) *RegistryUsecase {
	return &RegistryUsecase{
		farmerRepo:   farmerRepo,
		donorRepo:    donorRepo,
		eventRepo:    eventRepo,
		statsRepo:    statsRepo,
		uow:          uow,
		metrics:      m,
		ownerAddress: blockchain.NormalizeAddress(ownerAddress),
	}
}

// RegisterFarmer creates a farmer record for a previously unseen address.
func (uc *RegistryUsecase) RegisterFarmer(ctx context.Context, input entities.RegisterFarmerInput) (*entities.Farmer, error) {
	if !blockchain.IsValidAddress(input.Address) {
		return nil, errors.BadRequest("invalid farmer address")
	}
	address := blockchain.NormalizeAddress(input.Address)

	farmer := &entities.Farmer{
		Address:       address,
		Name:          input.Name,
		Location:      input.Location,
		FarmType:      input.FarmType,
		Email:         input.Email,
		PhoneNo:       input.PhoneNo,
		ProofImageRef: input.ProofImageRef,
		TotalReceived: "0",
	}

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.farmerRepo.Exists(ctx, address)
		if err != nil {
			return errors.InternalError(err)
		}
		if exists {
			return errors.AlreadyRegistered("farmer already registered")
		}

		if err := uc.farmerRepo.Create(ctx, farmer); err != nil {
			return errors.InternalError(err)
		}
		if err := uc.statsRepo.IncrementBeneficiaries(ctx); err != nil {
			return errors.InternalError(err)
		}
		return uc.appendEvent(ctx, entities.LedgerEventFarmerRegistered, address, address, farmer)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.FarmersRegistered.Inc()
	logger.Info(ctx, "farmer registered", zap.String("address", address))
	return uc.getFarmer(ctx, address)
}

// RegisterDonor creates a donor record for a previously unseen address.
func (uc *RegistryUsecase) RegisterDonor(ctx context.Context, input entities.RegisterDonorInput) (*entities.Donor, error) {
	if !blockchain.IsValidAddress(input.Address) {
		return nil, errors.BadRequest("invalid donor address")
	}
	address := blockchain.NormalizeAddress(input.Address)

	donor := &entities.Donor{
		Address:         address,
		Name:            input.Name,
		Description:     input.Description,
		Email:           input.Email,
		PhoneNo:         input.PhoneNo,
		ProofImageRef:   input.ProofImageRef,
		TotalDonated:    "0",
		ReputationScore: entities.InitialReputationScore,
	}

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.donorRepo.Exists(ctx, address)
		if err != nil {
			return errors.InternalError(err)
		}
		if exists {
			return errors.AlreadyRegistered("donor already registered")
		}

		if err := uc.donorRepo.Create(ctx, donor); err != nil {
			return errors.InternalError(err)
		}
		if err := uc.statsRepo.IncrementDonors(ctx); err != nil {
			return errors.InternalError(err)
		}
		return uc.appendEvent(ctx, entities.LedgerEventDonorRegistered, address, address, donor)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DonorsRegistered.Inc()
	logger.Info(ctx, "donor registered", zap.String("address", address))
	return uc.getDonor(ctx, address)
}

// VerifyFarmer sets the one-way verification flag. Only the Owner principal
// may call it; re-verifying has no additional effect and emits no event.
func (uc *RegistryUsecase) VerifyFarmer(ctx context.Context, caller, address string) (*entities.Farmer, error) {
	if err := uc.requireOwner(caller); err != nil {
		return nil, err
	}
	address = blockchain.NormalizeAddress(address)

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		farmer, err := uc.farmerRepo.GetByAddress(ctx, address)
		if err != nil {
			if err == errors.ErrNotRegistered {
				return errors.NotRegistered("farmer not registered")
			}
			return errors.InternalError(err)
		}
		if farmer.IsVerified {
			return nil
		}
		if err := uc.farmerRepo.MarkVerified(ctx, address); err != nil {
			return errors.InternalError(err)
		}
		return uc.appendEvent(ctx, entities.LedgerEventFarmerVerified, uc.ownerAddress, address, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "farmer verified", zap.String("address", address))
	return uc.getFarmer(ctx, address)
}

// VerifyDonor is the donor counterpart of VerifyFarmer.
func (uc *RegistryUsecase) VerifyDonor(ctx context.Context, caller, address string) (*entities.Donor, error) {
	if err := uc.requireOwner(caller); err != nil {
		return nil, err
	}
	address = blockchain.NormalizeAddress(address)

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		donor, err := uc.donorRepo.GetByAddress(ctx, address)
		if err != nil {
			if err == errors.ErrNotRegistered {
				return errors.NotRegistered("donor not registered")
			}
			return errors.InternalError(err)
		}
		if donor.IsVerified {
			return nil
		}
		if err := uc.donorRepo.MarkVerified(ctx, address); err != nil {
			return errors.InternalError(err)
		}
		return uc.appendEvent(ctx, entities.LedgerEventDonorVerified, uc.ownerAddress, address, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "donor verified", zap.String("address", address))
	return uc.getDonor(ctx, address)
}

// IsFarmerRegistered reports whether this address has a farmer record.
// Unknown addresses return false, never an error.
func (uc *RegistryUsecase) IsFarmerRegistered(ctx context.Context, address string) (bool, error) {
	if !blockchain.IsValidAddress(address) {
		return false, nil
	}
	return uc.farmerRepo.Exists(ctx, blockchain.NormalizeAddress(address))
}

// IsDonorRegistered reports whether this address has a donor record.
func (uc *RegistryUsecase) IsDonorRegistered(ctx context.Context, address string) (bool, error) {
	if !blockchain.IsValidAddress(address) {
		return false, nil
	}
	return uc.donorRepo.Exists(ctx, blockchain.NormalizeAddress(address))
}

// GetFarmerStats returns the full record for one farmer address.
func (uc *RegistryUsecase) GetFarmerStats(ctx context.Context, address string) (*entities.Farmer, error) {
	return uc.getFarmer(ctx, blockchain.NormalizeAddress(address))
}

// GetDonorStats returns the full record for one donor address.
func (uc *RegistryUsecase) GetDonorStats(ctx context.Context, address string) (*entities.Donor, error) {
	return uc.getDonor(ctx, blockchain.NormalizeAddress(address))
}

// ListFarmers returns registered farmers in registration order.
func (uc *RegistryUsecase) ListFarmers(ctx context.Context, page, limit int) ([]*entities.Farmer, utils.PaginationMeta, error) {
	params := utils.NewPageRequest(page, limit)
	farmers, total, err := uc.farmerRepo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, errors.InternalError(err)
	}
	return farmers, params.Meta(total), nil
}

// ListDonors returns registered donors in registration order.
func (uc *RegistryUsecase) ListDonors(ctx context.Context, page, limit int) ([]*entities.Donor, utils.PaginationMeta, error) {
	params := utils.NewPageRequest(page, limit)
	donors, total, err := uc.donorRepo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, errors.InternalError(err)
	}
	return donors, params.Meta(total), nil
}

func (uc *RegistryUsecase) requireOwner(caller string) error {
	if uc.ownerAddress == "" || blockchain.NormalizeAddress(caller) != uc.ownerAddress {
		return errors.Unauthorized("caller is not the owner")
	}
	return nil
}

func (uc *RegistryUsecase) getFarmer(ctx context.Context, address string) (*entities.Farmer, error) {
	farmer, err := uc.farmerRepo.GetByAddress(ctx, address)
	if err != nil {
		if err == errors.ErrNotRegistered {
			return nil, errors.NotRegistered("farmer not registered")
		}
		return nil, errors.InternalError(err)
	}
	return farmer, nil
}

func (uc *RegistryUsecase) getDonor(ctx context.Context, address string) (*entities.Donor, error) {
	donor, err := uc.donorRepo.GetByAddress(ctx, address)
	if err != nil {
		if err == errors.ErrNotRegistered {
			return nil, errors.NotRegistered("donor not registered")
		}
		return nil, errors.InternalError(err)
	}
	return donor, nil
}

func (uc *RegistryUsecase) appendEvent(ctx context.Context, eventType entities.LedgerEventType, actor, subject string, payload interface{}) error {
	event := &entities.LedgerEvent{
		EventType: eventType,
		Actor:     actor,
		Subject:   subject,
		Payload:   payload,
	}
	if err := uc.eventRepo.Append(ctx, event); err != nil {
		return errors.InternalError(err)
	}
	return nil
}
