package models

import (
	"time"
)

type BalanceAccount struct {
	Address   string `gorm:"type:varchar(64);primaryKey"`
	Balance   string `gorm:"type:decimal(78,0);not null;default:0"`
	UpdatedAt time.Time
}

func (BalanceAccount) TableName() string {
	return "balance_accounts"
}

// Deposit rows record credited treasury payments keyed by tx hash so the
// same transaction can never be credited twice.
type Deposit struct {
	TxHash    string `gorm:"type:varchar(80);primaryKey"`
	Address   string `gorm:"type:varchar(64);not null;index"`
	Amount    string `gorm:"type:decimal(78,0);not null"`
	CreatedAt time.Time
}

func (Deposit) TableName() string {
	return "deposits"
}
