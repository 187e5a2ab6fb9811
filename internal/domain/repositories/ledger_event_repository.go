package repositories

import (
	"context"

	"github.com/google/uuid"

	"farm-bridge.backend/internal/domain/entities"
)

// LedgerEventRepository defines the append-only event log operations
type LedgerEventRepository interface {
	Append(ctx context.Context, event *entities.LedgerEvent) error
	List(ctx context.Context, limit, offset int) ([]*entities.LedgerEvent, int64, error)
	ListUndelivered(ctx context.Context, limit int) ([]*entities.LedgerEvent, error)
	MarkDelivered(ctx context.Context, ids []uuid.UUID) error
}
