package stakepool

import (
	"math/big"
	"testing"
)

func TestRateBootstrap(t *testing.T) {
	if got := Rate(big.NewInt(0), big.NewInt(0)); got.Cmp(RateScale) != 0 {
		t.Fatalf("expected bootstrap rate %s, got %s", RateScale, got)
	}
	if got := Rate(nil, nil); got.Cmp(RateScale) != 0 {
		t.Fatalf("expected bootstrap rate for nil inputs, got %s", got)
	}
	if got := ToReceipt(big.NewInt(42), big.NewInt(0), big.NewInt(0)); got.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected 1:1 receipt conversion with zero supply, got %s", got)
	}
	if got := ToBase(big.NewInt(42), big.NewInt(0), big.NewInt(0)); got.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected 1:1 base conversion with zero supply, got %s", got)
	}
}

func TestRateTruncatesTowardPool(t *testing.T) {
	pooled := big.NewInt(105)
	supply := big.NewInt(100)

	// 10 base at a 1.05 rate is 9.52 receipt tokens; the caller gets 9.
	if got := ToReceipt(big.NewInt(10), pooled, supply); got.Cmp(big.NewInt(9)) != 0 {
		t.Fatalf("expected 9 receipt tokens, got %s", got)
	}
	// 9 receipt tokens back at the same rate is 9.45 base; the caller gets 9.
	if got := ToBase(big.NewInt(9), pooled, supply); got.Cmp(big.NewInt(9)) != 0 {
		t.Fatalf("expected 9 base, got %s", got)
	}

	want := new(big.Int).Mul(pooled, RateScale)
	want.Quo(want, supply)
	if got := Rate(pooled, supply); got.Cmp(want) != 0 {
		t.Fatalf("expected rate %s, got %s", want, got)
	}
}

func TestConversionRoundTripNeverGains(t *testing.T) {
	cases := []struct {
		pooled, supply int64
	}{
		{100, 100},
		{105, 100},
		{1, 1_000_000},
		{1_000_000, 7},
		{333, 999},
	}
	for _, tc := range cases {
		pooled := big.NewInt(tc.pooled)
		supply := big.NewInt(tc.supply)
		for _, amount := range []int64{1, 7, 50, 12345} {
			base := big.NewInt(amount)
			back := ToBase(ToReceipt(base, pooled, supply), pooled, supply)
			if back.Cmp(base) > 0 {
				t.Fatalf("round trip gained value at pooled=%d supply=%d: %s -> %s", tc.pooled, tc.supply, base, back)
			}
		}
	}
}

func TestToReceiptZeroPooledNonZeroSupply(t *testing.T) {
	// A drained pool with outstanding receipt tokens values deposits at zero
	// rather than dividing by zero.
	if got := ToReceipt(big.NewInt(10), big.NewInt(0), big.NewInt(100)); got.Sign() != 0 {
		t.Fatalf("expected 0 receipt tokens, got %s", got)
	}
	if got := ToBase(big.NewInt(10), big.NewInt(0), big.NewInt(100)); got.Sign() != 0 {
		t.Fatalf("expected 0 base, got %s", got)
	}
	if got := Rate(big.NewInt(0), big.NewInt(100)); got.Sign() != 0 {
		t.Fatalf("expected 0 rate, got %s", got)
	}
}
