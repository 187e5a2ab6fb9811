package entities

import (
	"time"
)

// InitialReputationScore is the stored score assigned at donor registration.
// It is replaced by the derived score after the first accepted disbursement.
const InitialReputationScore = 50

// Donor represents a registered donor
type Donor struct {
	Address                 string    `json:"address"`
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
	Email                   string    `json:"email"`
	PhoneNo                 string    `json:"phoneNo"`
	ProofImageRef           string    `json:"proofImageRef"`
	IsVerified              bool      `json:"isVerified"`
	TotalDonated            string    `json:"totalDonated"` // wei
	SuccessfulDisbursements int       `json:"successfulDisbursements"`
	ReputationScore         int       `json:"reputationScore"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// RegisterDonorInput represents input for donor registration
type RegisterDonorInput struct {
	Address       string `json:"address" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description" binding:"required"`
	ProofImageRef string `json:"proofImageRef" binding:"required"`
	PhoneNo       string `json:"phoneNo" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
}
