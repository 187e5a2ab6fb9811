package usecases

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/domain/errors"
	domainRepos "farm-bridge.backend/internal/domain/repositories"
	"farm-bridge.backend/pkg/utils"
)

// StatsUsecase exposes the O(1) running counters and the event log.
type StatsUsecase struct {
	statsRepo domainRepos.StatsRepository
	eventRepo domainRepos.LedgerEventRepository
}

func NewStatsUsecase(
	statsRepo domainRepos.StatsRepository,
	eventRepo domainRepos.LedgerEventRepository,
) *StatsUsecase {
	return &StatsUsecase{
		statsRepo: statsRepo,
		eventRepo: eventRepo,
	}
}

// GetContractStats returns the running global counters.
func (uc *StatsUsecase) GetContractStats(ctx context.Context) (*entities.ContractStats, error) {
	stats, err := uc.statsRepo.Get(ctx)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return stats, nil
}

// ListEvents returns the ledger event log in transition order.
func (uc *StatsUsecase) ListEvents(ctx context.Context, page, limit int) ([]*entities.LedgerEvent, utils.PaginationMeta, error) {
	params := utils.NewPageRequest(page, limit)
	events, total, err := uc.eventRepo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, errors.InternalError(err)
	}
	return events, params.Meta(total), nil
}
