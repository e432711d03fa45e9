package stakepool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	poolerr "liquidstake/core/errors"
	"liquidstake/core/events"
	"liquidstake/core/state"
)

// RequestWithdrawal burns the caller's receipt tokens into a pending
// withdrawal request. The burned tokens stay counted in the conversion
// denominator (PendingLocked) until the request is claimed, so the payout is
// recomputed at the rate current at claim time.
func (e *Engine) RequestWithdrawal(caller common.Address, receiptAmount *big.Int) (uint64, error) {
	if err := e.whenNotPaused(); err != nil {
		return 0, err
	}
	if receiptAmount == nil || receiptAmount.Sign() <= 0 {
		return 0, poolerr.ErrInvalidAmount
	}
	balance, err := e.token.BalanceOf(caller)
	if err != nil {
		return 0, err
	}
	if balance.Cmp(receiptAmount) < 0 {
		return 0, poolerr.ErrInsufficientBalance
	}
	if err := e.Accrue(); err != nil {
		return 0, err
	}
	if err := e.token.Burn(caller, receiptAmount); err != nil {
		return 0, err
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return 0, err
	}
	pool.PendingLocked = new(big.Int).Add(pool.PendingLocked, receiptAmount)
	if err := e.state.SetPoolState(pool); err != nil {
		return 0, err
	}

	id, err := e.state.RequestCounter()
	if err != nil {
		return 0, err
	}
	if err := e.state.SetRequestCounter(id + 1); err != nil {
		return 0, err
	}
	req := &state.WithdrawalRequest{
		ID:            id,
		Owner:         caller,
		ReceiptAmount: new(big.Int).Set(receiptAmount),
		RequestUnix:   e.now(),
		Claimed:       false,
	}
	if err := e.state.PutWithdrawalRequest(req); err != nil {
		return 0, err
	}
	if err := e.state.AppendOwnerRequest(caller, id); err != nil {
		return 0, err
	}
	e.emitter.Emit(events.WithdrawalRequested{User: caller, ReceiptAmount: receiptAmount, RequestID: id})
	return id, nil
}

// ClaimWithdrawal pays out a matured request at the rate current at claim
// time. The claimed flag and all accounting decrements are committed before
// the native transfer (checks-effects-interactions).
func (e *Engine) ClaimWithdrawal(caller common.Address, id uint64) (*big.Int, error) {
	if e.state == nil {
		return nil, errNilState
	}
	req, ok, err := e.state.WithdrawalRequest(id)
	if err != nil {
		return nil, err
	}
	if !ok || req.Owner != caller {
		return nil, poolerr.ErrNotYourRequest
	}
	if req.Claimed {
		return nil, poolerr.ErrAlreadyClaimed
	}
	admin, err := e.admin()
	if err != nil {
		return nil, err
	}
	if e.now() < req.RequestUnix+admin.WithdrawalDelaySecs {
		return nil, poolerr.ErrWithdrawalDelayNotMet
	}
	if err := e.Accrue(); err != nil {
		return nil, err
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return nil, err
	}
	supply, err := e.effectiveSupply(pool)
	if err != nil {
		return nil, err
	}
	payout := ToBase(req.ReceiptAmount, pool.TotalPooled, supply)

	vault, err := e.state.VaultBalance()
	if err != nil {
		return nil, err
	}
	if vault.Cmp(payout) < 0 {
		return nil, poolerr.ErrInsufficientContractBalance
	}

	req.Claimed = true
	if err := e.state.PutWithdrawalRequest(req); err != nil {
		return nil, err
	}
	pool.TotalPooled = new(big.Int).Sub(pool.TotalPooled, payout)
	pool.PendingLocked = new(big.Int).Sub(pool.PendingLocked, req.ReceiptAmount)
	if err := e.state.SetPoolState(pool); err != nil {
		return nil, err
	}
	if err := e.state.SetVaultBalance(new(big.Int).Sub(vault, payout)); err != nil {
		return nil, err
	}
	if err := e.state.AddPaidOut(caller, payout); err != nil {
		return nil, err
	}
	e.emitter.Emit(events.WithdrawalClaimed{User: caller, RequestID: id, BaseAmount: payout})
	return payout, nil
}

// CanClaim reports whether the request exists, is unclaimed, and has matured.
func (e *Engine) CanClaim(id uint64) (bool, error) {
	req, ok, err := e.state.WithdrawalRequest(id)
	if err != nil {
		return false, err
	}
	if !ok || req.Claimed {
		return false, nil
	}
	admin, err := e.state.AdminState()
	if err != nil {
		return false, err
	}
	return e.now() >= req.RequestUnix+admin.WithdrawalDelaySecs, nil
}

// Request returns the stored withdrawal request.
func (e *Engine) Request(id uint64) (*state.WithdrawalRequest, bool, error) {
	return e.state.WithdrawalRequest(id)
}

// RequestsByOwner returns the identifiers of all requests ever opened by the
// owner, oldest first, including claimed ones.
func (e *Engine) RequestsByOwner(owner common.Address) ([]uint64, error) {
	return e.state.RequestsByOwner(owner)
}
