// Package errors enumerates the closed failure taxonomy of the staking pool
// engine. Every public operation fails with exactly one of these sentinels
// (possibly wrapped); the RPC adapter maps them to structured error codes.
package errors

import stderrors "errors"

var (
	// ErrUnauthorized rejects a non-owner calling an owner-only operation.
	ErrUnauthorized = stderrors.New("pool: unauthorized")
	// ErrZeroAddress rejects the null identity in any ledger participant slot.
	ErrZeroAddress = stderrors.New("pool: zero address")
	// ErrInvalidAmount rejects parameters outside their allowed range.
	ErrInvalidAmount = stderrors.New("pool: invalid amount")
	// ErrInsufficientBalance rejects debits exceeding the source balance.
	ErrInsufficientBalance = stderrors.New("pool: insufficient balance")
	// ErrInsufficientAllowance rejects delegated transfers exceeding the
	// spender's remaining allowance.
	ErrInsufficientAllowance = stderrors.New("pool: insufficient allowance")
	// ErrInsufficientContractBalance rejects payouts exceeding the vault's
	// native-asset balance.
	ErrInsufficientContractBalance = stderrors.New("pool: insufficient contract balance")
	// ErrAlreadyClaimed rejects a second claim on a terminal request.
	ErrAlreadyClaimed = stderrors.New("pool: withdrawal already claimed")
	// ErrNotYourRequest rejects claims by anyone but the request owner.
	ErrNotYourRequest = stderrors.New("pool: not your request")
	// ErrWithdrawalDelayNotMet rejects claims before the request matures.
	ErrWithdrawalDelayNotMet = stderrors.New("pool: withdrawal delay not met")
	// ErrPaused rejects user-facing mutations while the pool is paused, and
	// emergency withdrawals while it is not.
	ErrPaused = stderrors.New("pool: paused")
)
