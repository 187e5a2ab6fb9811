package utils

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

var (
	// ErrMalformedAmount is returned when a wei string is not a plain
	// non-negative decimal integer.
	ErrMalformedAmount = errors.New("malformed amount")

	weiPerEther = new(big.Int).SetUint64(params.Ether)
)

// ParseWei parses a base-unit (wei) amount. The ledger operates entirely on
// these integers; decimal conversion happens only at the presentation
// boundary.
func ParseWei(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrMalformedAmount
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrMalformedAmount
	}
	return n, nil
}

// MustParseWei parses a trusted wei string, for values the service itself
// previously stored. Malformed stored values are treated as zero.
func MustParseWei(s string) *big.Int {
	n, err := ParseWei(s)
	if err != nil {
		return big.NewInt(0)
	}
	return n
}

// AddWei returns the decimal string sum of two stored wei amounts.
func AddWei(a, b string) string {
	return new(big.Int).Add(MustParseWei(a), MustParseWei(b)).String()
}

// WeiToEtherString renders a wei amount as a decimal ether string for
// display. Trailing fractional zeros are trimmed.
func WeiToEtherString(wei *big.Int) string {
	q := new(big.Rat).SetFrac(wei, weiPerEther)
	s := q.FloatString(18)
	// trim trailing zeros and a dangling decimal point
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
