package entities

import (
	"time"
)

// AidRequest represents a farmer's funding request.
// IDs are assigned sequentially starting at 0. AmountFunded only ever grows;
// Fulfilled flips to true once AmountFunded >= AmountRequested and never
// reverts, even when the request ends up over-funded.
type AidRequest struct {
	ID              uint64    `json:"id"`
	FarmerAddress   string    `json:"farmer"`
	Name            string    `json:"name"`
	Purpose         string    `json:"purpose"`
	AmountRequested string    `json:"amountRequested"` // wei
	AmountFunded    string    `json:"amountFunded"`    // wei
	Fulfilled       bool      `json:"fulfilled"`
	Timestamp       time.Time `json:"timestamp"`
	UpdatedAt       time.Time `json:"-"`
}

// Open reports whether the request can still accept contributions.
func (r *AidRequest) Open() bool {
	return !r.Fulfilled
}

// CreateAidRequestInput represents input for creating an aid request
type CreateAidRequestInput struct {
	FarmerAddress string `json:"farmerAddress" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Purpose       string `json:"purpose" binding:"required"`
	Amount        string `json:"amount" binding:"required"` // wei
}

// FundAidRequestInput represents input for funding an aid request
type FundAidRequestInput struct {
	DonorAddress string `json:"donorAddress" binding:"required"`
	Amount       string `json:"amount" binding:"required"` // wei
}
