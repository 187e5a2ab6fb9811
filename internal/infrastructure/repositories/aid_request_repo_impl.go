package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/infrastructure/models"
)

// AidRequestRepositoryImpl implements AidRequestRepository
type AidRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewAidRequestRepository(db *gorm.DB) *AidRequestRepositoryImpl {
	return &AidRequestRepositoryImpl{db: db}
}

// createAttempts bounds the id-collision retries in Create.
const createAttempts = 3

// Create assigns the next sequential id under the caller's transaction and
// stores the request. Two transactions racing on the same max(id) read
// surface as a duplicate-key insert; the loser re-reads and retries rather
// than failing the request.
func (r *AidRequestRepositoryImpl) Create(ctx context.Context, request *entities.AidRequest) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		var next struct {
			NextID uint64
		}
		if err = db.Model(&models.AidRequest{}).
			Select("COALESCE(MAX(id) + 1, 0) AS next_id").
			Scan(&next).Error; err != nil {
			return err
		}

		now := time.Now()
		m := &models.AidRequest{
			ID:              next.NextID,
			FarmerAddress:   request.FarmerAddress,
			Name:            request.Name,
			Purpose:         request.Purpose,
			AmountRequested: request.AmountRequested,
			AmountFunded:    "0",
			Fulfilled:       false,
			Timestamp:       now,
			UpdatedAt:       now,
		}
		err = db.Create(m).Error
		if err == nil {
			request.ID = m.ID
			request.AmountFunded = "0"
			request.Fulfilled = false
			request.Timestamp = m.Timestamp
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	return err
}

// isDuplicateKey reports whether an insert failed on a primary-key or
// unique-index collision. Matched by message because the postgres and
// sqlite drivers surface different error types.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *AidRequestRepositoryImpl) GetByID(ctx context.Context, id uint64) (*entities.AidRequest, error) {
	var m models.AidRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidRequestID
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate locks the request row for the surrounding transaction.
func (r *AidRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint64) (*entities.AidRequest, error) {
	db := lockForUpdate(GetDB(ctx, r.db).WithContext(ctx))

	var m models.AidRequest
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidRequestID
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AidRequestRepositoryImpl) ListAll(ctx context.Context) ([]*entities.AidRequest, error) {
	var ms []models.AidRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	requests := make([]*entities.AidRequest, 0, len(ms))
	for i := range ms {
		requests = append(requests, r.toEntity(&ms[i]))
	}
	return requests, nil
}

func (r *AidRequestRepositoryImpl) ListByFarmer(ctx context.Context, farmer string) ([]*entities.AidRequest, error) {
	var ms []models.AidRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("farmer_address = ?", farmer).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	requests := make([]*entities.AidRequest, 0, len(ms))
	for i := range ms {
		requests = append(requests, r.toEntity(&ms[i]))
	}
	return requests, nil
}

func (r *AidRequestRepositoryImpl) ApplyFunding(ctx context.Context, id uint64, amountFunded string, fulfilled bool) error {
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AidRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount_funded": amountFunded,
			"fulfilled":     fulfilled,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrInvalidRequestID
	}
	return nil
}

func (r *AidRequestRepositoryImpl) toEntity(m *models.AidRequest) *entities.AidRequest {
	return &entities.AidRequest{
		ID:              m.ID,
		FarmerAddress:   m.FarmerAddress,
		Name:            m.Name,
		Purpose:         m.Purpose,
		AmountRequested: m.AmountRequested,
		AmountFunded:    m.AmountFunded,
		Fulfilled:       m.Fulfilled,
		Timestamp:       m.Timestamp,
		UpdatedAt:       m.UpdatedAt,
	}
}
