package stakepool

import "math/big"

// The converters are pure functions over a pooled value and a receipt supply.
// Division always truncates toward zero, so rounding loss stays with the
// pool, never with the caller. A zero supply is the bootstrap case and maps
// amounts 1:1.

// Rate returns the base-asset value of one whole receipt token, scaled by
// RateScale.
func Rate(pooled, supply *big.Int) *big.Int {
	if supply == nil || supply.Sign() == 0 {
		return new(big.Int).Set(RateScale)
	}
	rate := new(big.Int).Mul(nonNil(pooled), RateScale)
	return rate.Quo(rate, supply)
}

// ToReceipt converts a base-asset amount into receipt tokens at the supplied
// pool ratio.
func ToReceipt(baseAmount, pooled, supply *big.Int) *big.Int {
	baseAmount = nonNil(baseAmount)
	if supply == nil || supply.Sign() == 0 {
		return new(big.Int).Set(baseAmount)
	}
	pooled = nonNil(pooled)
	if pooled.Sign() == 0 {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(baseAmount, supply)
	return out.Quo(out, pooled)
}

// ToBase converts a receipt-token amount into base asset at the supplied pool
// ratio.
func ToBase(receiptAmount, pooled, supply *big.Int) *big.Int {
	receiptAmount = nonNil(receiptAmount)
	if supply == nil || supply.Sign() == 0 {
		return new(big.Int).Set(receiptAmount)
	}
	out := new(big.Int).Mul(receiptAmount, nonNil(pooled))
	return out.Quo(out, supply)
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
