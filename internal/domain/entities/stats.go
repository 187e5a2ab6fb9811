package entities

// ContractStats holds the global running counters. Counters are incremented at
// the moment of the qualifying event and never recomputed or decremented.
type ContractStats struct {
	TotalDonors           int64  `json:"totalDonors"`
	TotalBeneficiaries    int64  `json:"totalBeneficiaries"`
	TotalFundsDistributed string `json:"totalFundsDistributed"` // wei
}
