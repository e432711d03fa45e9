package stakepool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	poolerr "liquidstake/core/errors"
	"liquidstake/core/events"
)

// SetApr updates the annual yield rate. Yield earned under the old rate is
// accrued first so the change only applies forward.
func (e *Engine) SetApr(caller common.Address, aprBps uint64) error {
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if aprBps > MaxAprBps {
		return poolerr.ErrInvalidAmount
	}
	if err := e.Accrue(); err != nil {
		return err
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return err
	}
	pool.AprBps = aprBps
	return e.state.SetPoolState(pool)
}

// SetWithdrawalDelay updates the claim delay. Applies to pending requests as
// well, since claimability is computed on read.
func (e *Engine) SetWithdrawalDelay(caller common.Address, delaySecs uint64) error {
	admin, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if delaySecs > MaxWithdrawalDelaySecs {
		return poolerr.ErrInvalidAmount
	}
	admin.WithdrawalDelaySecs = delaySecs
	return e.state.SetAdminState(admin)
}

// AddRewards injects owner-supplied base asset into the pooled value, raising
// the exchange rate for all holders. The injection lands on top of whatever
// has already accrued; the accrual timestamp is left untouched.
func (e *Engine) AddRewards(caller common.Address, value *big.Int) error {
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if value == nil || value.Sign() <= 0 {
		return poolerr.ErrInvalidAmount
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return err
	}
	pool.TotalPooled = new(big.Int).Add(pool.TotalPooled, value)
	pool.AccruedTotal = new(big.Int).Add(pool.AccruedTotal, value)
	if err := e.state.SetPoolState(pool); err != nil {
		return err
	}
	vault, err := e.state.VaultBalance()
	if err != nil {
		return err
	}
	if err := e.state.SetVaultBalance(new(big.Int).Add(vault, value)); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsDistributed{Amount: value})
	return nil
}

// Pause stops staking and withdrawal requests. Claims stay open.
func (e *Engine) Pause(caller common.Address) error {
	admin, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	admin.Paused = true
	if err := e.state.SetAdminState(admin); err != nil {
		return err
	}
	e.emitter.Emit(events.Paused{})
	return nil
}

// Unpause reopens staking and withdrawal requests.
func (e *Engine) Unpause(caller common.Address) error {
	admin, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	admin.Paused = false
	if err := e.state.SetAdminState(admin); err != nil {
		return err
	}
	e.emitter.Emit(events.Unpaused{})
	return nil
}

// TransferOwnership hands the owner role to a new address.
func (e *Engine) TransferOwnership(caller, newOwner common.Address) error {
	admin, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if newOwner == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	previous := admin.Owner
	admin.Owner = newOwner
	if err := e.state.SetAdminState(admin); err != nil {
		return err
	}
	e.emitter.Emit(events.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

// EmergencyWithdraw drains native asset from the vault to the owner while the
// pool is paused. Deliberately bypasses the pool accounting: pending requests
// are not adjusted and may become unpayable.
func (e *Engine) EmergencyWithdraw(caller common.Address, amount *big.Int) error {
	admin, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if !admin.Paused {
		return poolerr.ErrPaused
	}
	if amount == nil || amount.Sign() < 0 {
		return poolerr.ErrInvalidAmount
	}
	vault, err := e.state.VaultBalance()
	if err != nil {
		return err
	}
	if vault.Cmp(amount) < 0 {
		return poolerr.ErrInsufficientContractBalance
	}
	if err := e.state.SetVaultBalance(new(big.Int).Sub(vault, amount)); err != nil {
		return err
	}
	return e.state.AddPaidOut(admin.Owner, amount)
}

// Fund deposits owner-supplied base asset into the vault without touching the
// pool accounting. Mirrors the plain-transfer path of the original contract,
// which only the owner may use.
func (e *Engine) Fund(caller common.Address, value *big.Int) error {
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if value == nil || value.Sign() <= 0 {
		return poolerr.ErrInvalidAmount
	}
	vault, err := e.state.VaultBalance()
	if err != nil {
		return err
	}
	return e.state.SetVaultBalance(new(big.Int).Add(vault, value))
}
