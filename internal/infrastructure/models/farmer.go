package models

import (
	"time"
)

type Farmer struct {
	Address              string `gorm:"type:varchar(64);primaryKey"`
	Name                 string `gorm:"type:varchar(255);not null"`
	Location             string `gorm:"type:varchar(255);not null"`
	FarmType             string `gorm:"type:varchar(100);not null"`
	Email                string `gorm:"type:varchar(255);not null"`
	PhoneNo              string `gorm:"type:varchar(32);not null"`
	ProofImageRef        string `gorm:"type:varchar(255);not null"`
	IsVerified           bool   `gorm:"not null;default:false"`
	TotalReceived        string `gorm:"type:decimal(78,0);not null;default:0"`
	LastDisbursementDate *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Farmer) TableName() string {
	return "farmers"
}
