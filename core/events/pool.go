package events

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"liquidstake/core/types"
)

const (
	// TypeStaked captures a base-asset deposit and the receipt tokens minted for it.
	TypeStaked = "pool.staked"
	// TypeRewardsDistributed is emitted whenever accrual or an owner injection
	// grows the pooled value.
	TypeRewardsDistributed = "pool.rewardsDistributed"
	// TypeWithdrawalRequested captures a receipt-token burn that opened a
	// pending withdrawal request.
	TypeWithdrawalRequested = "pool.withdrawalRequested"
	// TypeWithdrawalClaimed captures a matured request paid out in base asset.
	TypeWithdrawalClaimed = "pool.withdrawalClaimed"
	// TypeOwnershipTransferred is emitted on initialization and on every
	// ownership handover.
	TypeOwnershipTransferred = "pool.ownershipTransferred"
	// TypePaused and TypeUnpaused track the lifecycle toggle.
	TypePaused   = "pool.paused"
	TypeUnpaused = "pool.unpaused"
)

// Staked captures the mint realised by a base-asset deposit.
type Staked struct {
	User          common.Address
	BaseAmount    *big.Int
	ReceiptMinted *big.Int
}

// EventType satisfies the Event interface.
func (Staked) EventType() string { return TypeStaked }

// Event converts the structured payload into a broadcastable event.
func (e Staked) Event() *types.Event {
	return &types.Event{Type: TypeStaked, Attributes: map[string]string{
		"user":          e.User.Hex(),
		"baseAmount":    formatAmount(e.BaseAmount),
		"receiptMinted": formatAmount(e.ReceiptMinted),
	}}
}

// RewardsDistributed captures pooled-value growth from accrual or injection.
type RewardsDistributed struct {
	Amount *big.Int
}

// EventType satisfies the Event interface.
func (RewardsDistributed) EventType() string { return TypeRewardsDistributed }

// Event converts the structured payload into a broadcastable event.
func (e RewardsDistributed) Event() *types.Event {
	return &types.Event{Type: TypeRewardsDistributed, Attributes: map[string]string{
		"amount": formatAmount(e.Amount),
	}}
}

// WithdrawalRequested captures a newly opened withdrawal request.
type WithdrawalRequested struct {
	User          common.Address
	ReceiptAmount *big.Int
	RequestID     uint64
}

// EventType satisfies the Event interface.
func (WithdrawalRequested) EventType() string { return TypeWithdrawalRequested }

// Event converts the structured payload into a broadcastable event.
func (e WithdrawalRequested) Event() *types.Event {
	return &types.Event{Type: TypeWithdrawalRequested, Attributes: map[string]string{
		"user":          e.User.Hex(),
		"receiptAmount": formatAmount(e.ReceiptAmount),
		"requestId":     strconv.FormatUint(e.RequestID, 10),
	}}
}

// WithdrawalClaimed captures a matured request payout.
type WithdrawalClaimed struct {
	User       common.Address
	RequestID  uint64
	BaseAmount *big.Int
}

// EventType satisfies the Event interface.
func (WithdrawalClaimed) EventType() string { return TypeWithdrawalClaimed }

// Event converts the structured payload into a broadcastable event.
func (e WithdrawalClaimed) Event() *types.Event {
	return &types.Event{Type: TypeWithdrawalClaimed, Attributes: map[string]string{
		"user":       e.User.Hex(),
		"requestId":  strconv.FormatUint(e.RequestID, 10),
		"baseAmount": formatAmount(e.BaseAmount),
	}}
}

// OwnershipTransferred captures an owner handover.
type OwnershipTransferred struct {
	PreviousOwner common.Address
	NewOwner      common.Address
}

// EventType satisfies the Event interface.
func (OwnershipTransferred) EventType() string { return TypeOwnershipTransferred }

// Event converts the structured payload into a broadcastable event.
func (e OwnershipTransferred) Event() *types.Event {
	return &types.Event{Type: TypeOwnershipTransferred, Attributes: map[string]string{
		"previousOwner": e.PreviousOwner.Hex(),
		"newOwner":      e.NewOwner.Hex(),
	}}
}

// Paused marks the lifecycle toggle flipping on.
type Paused struct{}

// EventType satisfies the Event interface.
func (Paused) EventType() string { return TypePaused }

// Event converts the structured payload into a broadcastable event.
func (Paused) Event() *types.Event {
	return &types.Event{Type: TypePaused, Attributes: map[string]string{}}
}

// Unpaused marks the lifecycle toggle flipping off.
type Unpaused struct{}

// EventType satisfies the Event interface.
func (Unpaused) EventType() string { return TypeUnpaused }

// Event converts the structured payload into a broadcastable event.
func (Unpaused) Event() *types.Event {
	return &types.Event{Type: TypeUnpaused, Attributes: map[string]string{}}
}
