package entities

import (
	"time"
)

// BalanceAccount holds the off-chain treasury balance for one address.
// Funding an aid request moves value between the donor's and the farmer's
// account inside the same transaction as the ledger mutations.
type BalanceAccount struct {
	Address   string    `json:"address"`
	Balance   string    `json:"balance"` // wei
	UpdatedAt time.Time `json:"updatedAt"`
}

// Deposit records one on-chain treasury payment that was credited to a
// balance account. A transaction hash is creditable exactly once.
type Deposit struct {
	TxHash    string    `json:"txHash"`
	Address   string    `json:"address"`
	Amount    string    `json:"amount"` // wei
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitDepositInput represents input for crediting an on-chain deposit
type SubmitDepositInput struct {
	Address string `json:"address" binding:"required"`
	TxHash  string `json:"txHash" binding:"required"`
}
