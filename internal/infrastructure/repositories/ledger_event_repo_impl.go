package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/internal/infrastructure/models"
)

// LedgerEventRepositoryImpl implements LedgerEventRepository
type LedgerEventRepositoryImpl struct {
	db *gorm.DB
}

func NewLedgerEventRepository(db *gorm.DB) *LedgerEventRepositoryImpl {
	return &LedgerEventRepositoryImpl{db: db}
}

func (r *LedgerEventRepositoryImpl) Append(ctx context.Context, event *entities.LedgerEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	var payload string
	if event.Payload != nil {
		b, err := json.Marshal(event.Payload)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	m := &models.LedgerEvent{
		ID:        event.ID,
		EventType: string(event.EventType),
		Actor:     event.Actor,
		Subject:   event.Subject,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.CreatedAt = m.CreatedAt
	return nil
}

func (r *LedgerEventRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.LedgerEvent, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.LedgerEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Order("seq ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var ms []models.LedgerEvent
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*entities.LedgerEvent, 0, len(ms))
	for i := range ms {
		events = append(events, r.toEntity(&ms[i]))
	}
	return events, total, nil
}

func (r *LedgerEventRepositoryImpl) ListUndelivered(ctx context.Context, limit int) ([]*entities.LedgerEvent, error) {
	var ms []models.LedgerEvent
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("delivered_at IS NULL").
		Order("seq ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.LedgerEvent, 0, len(ms))
	for i := range ms {
		events = append(events, r.toEntity(&ms[i]))
	}
	return events, nil
}

func (r *LedgerEventRepositoryImpl) MarkDelivered(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.LedgerEvent{}).
		Where("id IN ?", ids).
		Update("delivered_at", time.Now()).Error
}

func (r *LedgerEventRepositoryImpl) toEntity(m *models.LedgerEvent) *entities.LedgerEvent {
	var payload interface{}
	if m.Payload != "" {
		// Stored payloads were marshaled by Append; a decode failure just
		// surfaces the raw string.
		if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
			payload = m.Payload
		}
	}
	return &entities.LedgerEvent{
		ID:          m.ID,
		EventType:   entities.LedgerEventType(m.EventType),
		Actor:       m.Actor,
		Subject:     m.Subject,
		Payload:     payload,
		DeliveredAt: m.DeliveredAt,
		CreatedAt:   m.CreatedAt,
	}
}
