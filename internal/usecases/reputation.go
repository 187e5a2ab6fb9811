package usecases

// Donor reputation is a saturating step function of the cumulative count of
// successful disbursements, re-derived in full on every accepted funding
// event. The table reproduces the product's documented sample points: 0
// before the first disbursement, 41 after it, then shrinking increments of
// 12, 8, 6, 5, ... converging on the 81 ceiling. Scores are reported on a
// 0-100 display scale elsewhere; the formula itself never exceeds 81.
var reputationBySuccessCount = []int{0, 41, 53, 61, 67, 72, 76, 79, 81}

// ReputationCeiling is the saturation point of the reputation curve.
const ReputationCeiling = 81

// ReputationScore derives a donor's reputation from their successful
// disbursement count.
func ReputationScore(successfulDisbursements int) int {
	if successfulDisbursements < 0 {
		return 0
	}
	if successfulDisbursements >= len(reputationBySuccessCount) {
		return ReputationCeiling
	}
	return reputationBySuccessCount[successfulDisbursements]
}
