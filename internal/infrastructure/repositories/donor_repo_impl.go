package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/infrastructure/models"
	"farm-bridge.backend/pkg/utils"
)

// DonorRepositoryImpl implements DonorRepository
type DonorRepositoryImpl struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) *DonorRepositoryImpl {
	return &DonorRepositoryImpl{db: db}
}

func (r *DonorRepositoryImpl) Create(ctx context.Context, donor *entities.Donor) error {
	now := time.Now()
	m := &models.Donor{
		Address:                 donor.Address,
		Name:                    donor.Name,
		Description:             donor.Description,
		Email:                   donor.Email,
		PhoneNo:                 donor.PhoneNo,
		ProofImageRef:           donor.ProofImageRef,
		IsVerified:              false,
		TotalDonated:            "0",
		SuccessfulDisbursements: 0,
		ReputationScore:         donor.ReputationScore,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *DonorRepositoryImpl) GetByAddress(ctx context.Context, address string) (*entities.Donor, error) {
	var m models.Donor
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotRegistered
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByAddressForUpdate locks the donor row for the surrounding transaction.
// Funding reads the disbursement count through this so two concurrent
// contributions by the same donor cannot derive the same count.
func (r *DonorRepositoryImpl) GetByAddressForUpdate(ctx context.Context, address string) (*entities.Donor, error) {
	var m models.Donor
	if err := lockForUpdate(GetDB(ctx, r.db).WithContext(ctx)).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotRegistered
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *DonorRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.Donor, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Donor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var ms []models.Donor
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	donors := make([]*entities.Donor, 0, len(ms))
	for i := range ms {
		donors = append(donors, r.toEntity(&ms[i]))
	}
	return donors, total, nil
}

func (r *DonorRepositoryImpl) Exists(ctx context.Context, address string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Donor{}).
		Where("address = ?", address).
		Count(&count).Error
	return count > 0, err
}

func (r *DonorRepositoryImpl) MarkVerified(ctx context.Context, address string) error {
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Donor{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"is_verified": true,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotRegistered
	}
	return nil
}

func (r *DonorRepositoryImpl) ApplyDisbursement(ctx context.Context, address string, amount string, newCount, newScore int) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Donor
	if err := lockForUpdate(db).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotRegistered
		}
		return err
	}

	return db.Model(&models.Donor{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"total_donated":            utils.AddWei(m.TotalDonated, amount),
			"successful_disbursements": newCount,
			"reputation_score":         newScore,
			"updated_at":               time.Now(),
		}).Error
}

func (r *DonorRepositoryImpl) toEntity(m *models.Donor) *entities.Donor {
	return &entities.Donor{
		Address:                 m.Address,
		Name:                    m.Name,
		Description:             m.Description,
		Email:                   m.Email,
		PhoneNo:                 m.PhoneNo,
		ProofImageRef:           m.ProofImageRef,
		IsVerified:              m.IsVerified,
		TotalDonated:            m.TotalDonated,
		SuccessfulDisbursements: m.SuccessfulDisbursements,
		ReputationScore:         m.ReputationScore,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}
