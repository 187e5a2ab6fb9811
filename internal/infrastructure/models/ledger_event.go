package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEvent rows are append-only. Seq gives the global transition order;
// DeliveredAt is set by the dispatcher after sinks have seen the event.
type LedgerEvent struct {
	Seq         uint64    `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	EventType   string    `gorm:"type:varchar(50);not null;index"`
	Actor       string    `gorm:"type:varchar(64)"`
	Subject     string    `gorm:"type:varchar(64);index"`
	Payload     string    `gorm:"type:text"`
	DeliveredAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}
