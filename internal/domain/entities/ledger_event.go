package entities

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventType represents a ledger event type
type LedgerEventType string

const (
	LedgerEventFarmerRegistered  LedgerEventType = "FARMER_REGISTERED"
	LedgerEventDonorRegistered   LedgerEventType = "DONOR_REGISTERED"
	LedgerEventFarmerVerified    LedgerEventType = "FARMER_VERIFIED"
	LedgerEventDonorVerified     LedgerEventType = "DONOR_VERIFIED"
	LedgerEventAidRequested      LedgerEventType = "AID_REQUESTED"
	LedgerEventAidFunded         LedgerEventType = "AID_FUNDED"
	LedgerEventReputationUpdated LedgerEventType = "REPUTATION_UPDATED"
	LedgerEventDepositCredited   LedgerEventType = "DEPOSIT_CREDITED"
)

// LedgerEvent is one committed state transition, appended in transition order.
// Payload carries the full field set of the transition as JSON.
type LedgerEvent struct {
	ID          uuid.UUID       `json:"id"`
	EventType   LedgerEventType `json:"eventType"`
	Actor       string          `json:"actor,omitempty"`
	Subject     string          `json:"subject,omitempty"`
	Payload     interface{}     `json:"payload,omitempty"`
	DeliveredAt *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AidRequestedPayload is the payload of an AID_REQUESTED event
type AidRequestedPayload struct {
	RequestID       uint64 `json:"requestId"`
	Farmer          string `json:"farmer"`
	Name            string `json:"name"`
	Purpose         string `json:"purpose"`
	AmountRequested string `json:"amountRequested"`
}

// AidFundedPayload is the payload of an AID_FUNDED event
type AidFundedPayload struct {
	RequestID uint64 `json:"requestId"`
	Donor     string `json:"donor"`
	Farmer    string `json:"farmer"`
	Amount    string `json:"amount"`
	Fulfilled bool   `json:"fulfilled"`
}

// ReputationUpdatedPayload is the payload of a REPUTATION_UPDATED event
type ReputationUpdatedPayload struct {
	Donor    string `json:"donor"`
	NewScore int    `json:"newScore"`
}

// DepositCreditedPayload is the payload of a DEPOSIT_CREDITED event
type DepositCreditedPayload struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
	TxHash  string `json:"txHash"`
}
