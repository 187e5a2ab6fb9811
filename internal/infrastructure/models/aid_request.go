package models

import (
	"time"
)

// AidRequest rows are append-only apart from the funding columns. The id is
// the contract-style sequential id starting at 0, assigned under the
// transaction that creates the row.
type AidRequest struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement:false"`
	FarmerAddress   string `gorm:"type:varchar(64);not null;index"`
	Name            string `gorm:"type:varchar(255);not null"`
	Purpose         string `gorm:"type:text;not null"`
	AmountRequested string `gorm:"type:decimal(78,0);not null"`
	AmountFunded    string `gorm:"type:decimal(78,0);not null;default:0"`
	Fulfilled       bool   `gorm:"not null;default:false;index"`
	Timestamp       time.Time
	UpdatedAt       time.Time
}

func (AidRequest) TableName() string {
	return "aid_requests"
}
