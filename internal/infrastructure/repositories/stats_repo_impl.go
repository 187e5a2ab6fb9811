package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/infrastructure/models"
	"farm-bridge.backend/pkg/utils"
)

const statsRowID = 1

// StatsRepositoryImpl implements StatsRepository over a single counter row
type StatsRepositoryImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepositoryImpl {
	return &StatsRepositoryImpl{db: db}
}

func (r *StatsRepositoryImpl) Get(ctx context.Context) (*entities.ContractStats, error) {
	m, err := r.row(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.ContractStats{
		TotalDonors:           m.TotalDonors,
		TotalBeneficiaries:    m.TotalBeneficiaries,
		TotalFundsDistributed: m.TotalFundsDistributed,
	}, nil
}

func (r *StatsRepositoryImpl) IncrementDonors(ctx context.Context) error {
	if _, err := r.row(ctx); err != nil {
		return err
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.ContractStats{}).
		Where("id = ?", statsRowID).
		Updates(map[string]interface{}{
			"total_donors": gorm.Expr("total_donors + 1"),
			"updated_at":   time.Now(),
		}).Error
}

func (r *StatsRepositoryImpl) IncrementBeneficiaries(ctx context.Context) error {
	if _, err := r.row(ctx); err != nil {
		return err
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.ContractStats{}).
		Where("id = ?", statsRowID).
		Updates(map[string]interface{}{
			"total_beneficiaries": gorm.Expr("total_beneficiaries + 1"),
			"updated_at":          time.Now(),
		}).Error
}

// AddFundsDistributed grows the global distribution total. The counter row
// is read under a row lock so concurrent funding transactions cannot
// overwrite each other's sums; the wei arithmetic itself stays in Go where
// it is exact at 256 bits.
func (r *StatsRepositoryImpl) AddFundsDistributed(ctx context.Context, amount string) error {
	m, err := r.lockedRow(ctx)
	if err != nil {
		return err
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.ContractStats{}).
		Where("id = ?", statsRowID).
		Updates(map[string]interface{}{
			"total_funds_distributed": utils.AddWei(m.TotalFundsDistributed, amount),
			"updated_at":              time.Now(),
		}).Error
}

// row fetches the singleton counter row, creating it on first use.
func (r *StatsRepositoryImpl) row(ctx context.Context) (*models.ContractStats, error) {
	return r.fetchRow(ctx, false)
}

// lockedRow is row with a FOR UPDATE lock held until the surrounding
// transaction finishes.
func (r *StatsRepositoryImpl) lockedRow(ctx context.Context) (*models.ContractStats, error) {
	return r.fetchRow(ctx, true)
}

func (r *StatsRepositoryImpl) fetchRow(ctx context.Context, lock bool) (*models.ContractStats, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	q := db
	if lock {
		q = lockForUpdate(q)
	}
	var m models.ContractStats
	err := q.Where("id = ?", statsRowID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.ContractStats{
			ID:                    statsRowID,
			TotalFundsDistributed: "0",
			UpdatedAt:             time.Now(),
		}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
