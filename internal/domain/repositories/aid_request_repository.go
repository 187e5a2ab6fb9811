package repositories

import (
	"context"

	"farm-bridge.backend/internal/domain/entities"
)

// AidRequestRepository defines aid request data operations
type AidRequestRepository interface {
	// Create assigns the next sequential id (starting at 0) and stores the
	// request. The assigned id is written back to the entity.
	Create(ctx context.Context, request *entities.AidRequest) error
	GetByID(ctx context.Context, id uint64) (*entities.AidRequest, error)
	// GetByIDForUpdate locks the request row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entities.AidRequest, error)
	// ListAll returns every request in creation order.
	ListAll(ctx context.Context) ([]*entities.AidRequest, error)
	ListByFarmer(ctx context.Context, farmer string) ([]*entities.AidRequest, error)
	// ApplyFunding sets the new funded total and fulfilled flag.
	ApplyFunding(ctx context.Context, id uint64, amountFunded string, fulfilled bool) error
}
