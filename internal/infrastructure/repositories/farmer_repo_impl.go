package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/infrastructure/models"
	"farm-bridge.backend/pkg/utils"
)

// FarmerRepositoryImpl implements FarmerRepository
type FarmerRepositoryImpl struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) *FarmerRepositoryImpl {
	return &FarmerRepositoryImpl{db: db}
}

func (r *FarmerRepositoryImpl) Create(ctx context.Context, farmer *entities.Farmer) error {
	now := time.Now()
	m := &models.Farmer{
		Address:       farmer.Address,
		Name:          farmer.Name,
		Location:      farmer.Location,
		FarmType:      farmer.FarmType,
		Email:         farmer.Email,
		PhoneNo:       farmer.PhoneNo,
		ProofImageRef: farmer.ProofImageRef,
		IsVerified:    false,
		TotalReceived: "0",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *FarmerRepositoryImpl) GetByAddress(ctx context.Context, address string) (*entities.Farmer, error) {
	var m models.Farmer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotRegistered
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *FarmerRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.Farmer, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Farmer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var ms []models.Farmer
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	farmers := make([]*entities.Farmer, 0, len(ms))
	for i := range ms {
		farmers = append(farmers, r.toEntity(&ms[i]))
	}
	return farmers, total, nil
}

func (r *FarmerRepositoryImpl) Exists(ctx context.Context, address string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Farmer{}).
		Where("address = ?", address).
		Count(&count).Error
	return count > 0, err
}

func (r *FarmerRepositoryImpl) MarkVerified(ctx context.Context, address string) error {
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Farmer{}).
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

func (r *FarmerRepositoryImpl) ApplyDisbursement(ctx context.Context, address string, amount string) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Farmer
	if err := lockForUpdate(db).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotRegistered
		}
		return err
	}

	now := time.Now()
	return db.Model(&models.Farmer{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"total_received":         utils.AddWei(m.TotalReceived, amount),
			"last_disbursement_date": now,
			"updated_at":             now,
		}).Error
}

func (r *FarmerRepositoryImpl) toEntity(m *models.Farmer) *entities.Farmer {
	return &entities.Farmer{
		Address:              m.Address,
		Name:                 m.Name,
		Location:             m.Location,
		FarmType:             m.FarmType,
		Email:                m.Email,
		PhoneNo:              m.PhoneNo,
		ProofImageRef:        m.ProofImageRef,
		IsVerified:           m.IsVerified,
		TotalReceived:        m.TotalReceived,
		LastDisbursementDate: null.TimeFromPtr(m.LastDisbursementDate),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
