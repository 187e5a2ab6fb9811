package models

import (
	"time"
)

type Donor struct {
	Address                 string `gorm:"type:varchar(64);primaryKey"`
	Name                    string `gorm:"type:varchar(255);not null"`
	Description             string `gorm:"type:text;not null"`
	Email                   string `gorm:"type:varchar(255);not null"`
	PhoneNo                 string `gorm:"type:varchar(32);not null"`
	ProofImageRef           string `gorm:"type:varchar(255);not null"`
	IsVerified              bool   `gorm:"not null;default:false"`
	TotalDonated            string `gorm:"type:decimal(78,0);not null;default:0"`
	SuccessfulDisbursements int    `gorm:"not null;default:0"`
	ReputationScore         int    `gorm:"not null;default:0"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (Donor) TableName() string {
	return "donors"
}
