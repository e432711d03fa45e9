package stakepool

import "math/big"

// Receipt-token descriptor written at initialization.
const (
	TokenName     = "Staked Ether"
	TokenSymbol   = "stEth"
	TokenDecimals = 18
)

const (
	// BasisPointsDenom is the denominator for all rate parameters.
	BasisPointsDenom = 10_000
	// SecondsPerYear is the accrual period base (365 days).
	SecondsPerYear = 365 * 24 * 60 * 60

	// DefaultAprBps is the annual yield rate applied until the owner changes it.
	DefaultAprBps = 500
	// MaxAprBps caps SetApr.
	MaxAprBps = 2_000

	// DefaultWithdrawalDelaySecs is the mandatory delay between requesting and
	// claiming a withdrawal (7 days).
	DefaultWithdrawalDelaySecs uint64 = 7 * 24 * 60 * 60
	// MaxWithdrawalDelaySecs caps SetWithdrawalDelay (30 days).
	MaxWithdrawalDelaySecs uint64 = 30 * 24 * 60 * 60
)

// RateScale is the fixed-point scale of the exchange rate (1e18, matching the
// receipt-token decimals).
var RateScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
