package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Farmer represents a registered aid beneficiary
type Farmer struct {
	Address              string    `json:"address"`
	Name                 string    `json:"name"`
	Location             string    `json:"location"`
	FarmType             string    `json:"farmType"`
	Email                string    `json:"email"`
	PhoneNo              string    `json:"phoneNo"`
	ProofImageRef        string    `json:"proofImageRef"`
	IsVerified           bool      `json:"isVerified"`
	TotalReceived        string    `json:"totalReceived"` // wei
	LastDisbursementDate null.Time `json:"lastDisbursementDate,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// RegisterFarmerInput represents input for farmer registration
type RegisterFarmerInput struct {
	Address       string `json:"address" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location" binding:"required"`
	FarmType      string `json:"farmType" binding:"required"`
	ProofImageRef string `json:"proofImageRef" binding:"required"`
	PhoneNo       string `json:"phoneNo" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
}
