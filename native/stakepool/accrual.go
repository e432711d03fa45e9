package stakepool

import (
	"math/big"

	"liquidstake/core/events"
)

var accrualDenom = big.NewInt(int64(SecondsPerYear) * BasisPointsDenom)

// Accrue brings the pooled value up to date with the time-weighted yield
// earned since the last accrual. Idempotent within a single timestamp, and a
// no-op when the clock has not advanced. Every user-facing mutation calls it
// before converting between units, so conversions always see freshly accrued
// value.
//
// The yield for an elapsed window is
//
//	floor(pooled * aprBps * elapsed / (SecondsPerYear * BasisPointsDenom))
//
// and the accrual timestamp only advances when the floor is positive, so
// fractional yield is carried forward rather than dropped.
func (e *Engine) Accrue() error {
	if e.state == nil {
		return errNilState
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return err
	}
	now := e.now()

	ledgerSupply, err := e.token.TotalSupply()
	if err != nil {
		return err
	}
	if ledgerSupply.Sign() == 0 {
		// No yield accrues on an empty pool; just move the high-water mark.
		if pool.LastAccrualUnix != now {
			pool.LastAccrualUnix = now
			return e.state.SetPoolState(pool)
		}
		return nil
	}
	if now <= pool.LastAccrualUnix {
		return nil
	}

	elapsed := new(big.Int).SetUint64(now - pool.LastAccrualUnix)
	yield := new(big.Int).Mul(pool.TotalPooled, new(big.Int).SetUint64(pool.AprBps))
	yield.Mul(yield, elapsed)
	yield.Quo(yield, accrualDenom)
	if yield.Sign() <= 0 {
		return nil
	}

	pool.TotalPooled = new(big.Int).Add(pool.TotalPooled, yield)
	pool.AccruedTotal = new(big.Int).Add(pool.AccruedTotal, yield)
	pool.LastAccrualUnix = now
	if err := e.state.SetPoolState(pool); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsDistributed{Amount: yield})
	return nil
}
