package models

import (
	"time"
)

// ContractStats is a single-row table of running counters. The row with
// ID=1 is created on first use and only ever incremented.
type ContractStats struct {
	ID                    int    `gorm:"primaryKey"`
	TotalDonors           int64  `gorm:"not null;default:0"`
	TotalBeneficiaries    int64  `gorm:"not null;default:0"`
	TotalFundsDistributed string `gorm:"type:decimal(78,0);not null;default:0"`
	UpdatedAt             time.Time
}

func (ContractStats) TableName() string {
	return "contract_stats"
}
