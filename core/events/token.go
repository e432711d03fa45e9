package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"liquidstake/core/types"
)

const (
	// TypeTransfer is emitted for every receipt-token balance movement,
	// including mints (zero from) and burns (zero to).
	TypeTransfer = "token.transfer"
	// TypeApproval is emitted when an owner overwrites a spender allowance.
	TypeApproval = "token.approval"
)

// Transfer captures a receipt-token movement between two accounts.
type Transfer struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

// EventType satisfies the Event interface.
func (Transfer) EventType() string { return TypeTransfer }

// Event converts the structured payload into a broadcastable event.
func (e Transfer) Event() *types.Event {
	return &types.Event{Type: TypeTransfer, Attributes: map[string]string{
		"from":   e.From.Hex(),
		"to":     e.To.Hex(),
		"amount": formatAmount(e.Amount),
	}}
}

// Approval captures an allowance overwrite.
type Approval struct {
	Owner   common.Address
	Spender common.Address
	Amount  *big.Int
}

// EventType satisfies the Event interface.
func (Approval) EventType() string { return TypeApproval }

// Event converts the structured payload into a broadcastable event.
func (e Approval) Event() *types.Event {
	return &types.Event{Type: TypeApproval, Attributes: map[string]string{
		"owner":   e.Owner.Hex(),
		"spender": e.Spender.Hex(),
		"amount":  formatAmount(e.Amount),
	}}
}

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
