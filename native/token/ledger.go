// Package token implements the fungible receipt-token ledger: balances,
// allowances and total supply with mint, burn, transfer and delegated
// transfer primitives. All arithmetic is fixed-width 256-bit and checked;
// overflow and underflow abort the operation instead of wrapping.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	poolerr "liquidstake/core/errors"
	"liquidstake/core/events"
)

// State exposes the ledger storage required by the token primitives. The
// state manager satisfies it.
type State interface {
	BalanceOf(addr common.Address) (*uint256.Int, error)
	SetBalance(addr common.Address, value *uint256.Int) error
	TotalSupply() (*uint256.Int, error)
	SetTotalSupply(value *uint256.Int) error
	Allowance(owner, spender common.Address) (*uint256.Int, error)
	SetAllowance(owner, spender common.Address, value *uint256.Int) error
}

// Ledger wires the token bookkeeping with external state and event emission.
type Ledger struct {
	state   State
	emitter events.Emitter
}

// NewLedger creates a ledger with a no-op emitter. Callers can override the
// emitter via SetEmitter.
func NewLedger(state State) *Ledger {
	return &Ledger{state: state, emitter: events.NoopEmitter{}}
}

// SetEmitter configures the event emitter used by the ledger. Passing nil
// resets the emitter to a no-op implementation.
func (l *Ledger) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		l.emitter = events.NoopEmitter{}
		return
	}
	l.emitter = emitter
}

var zeroAddress = common.Address{}

// toWord validates an externally supplied amount and converts it to the
// fixed-width representation used for storage.
func toWord(amount *big.Int) (*uint256.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, poolerr.ErrInvalidAmount
	}
	word, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, poolerr.ErrInvalidAmount
	}
	return word, nil
}

// BalanceOf returns the receipt-token balance of the account.
func (l *Ledger) BalanceOf(addr common.Address) (*big.Int, error) {
	balance, err := l.state.BalanceOf(addr)
	if err != nil {
		return nil, err
	}
	return balance.ToBig(), nil
}

// TotalSupply returns the outstanding receipt-token supply.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	supply, err := l.state.TotalSupply()
	if err != nil {
		return nil, err
	}
	return supply.ToBig(), nil
}

// Allowance returns the remaining allowance granted by owner to spender.
func (l *Ledger) Allowance(owner, spender common.Address) (*big.Int, error) {
	allowance, err := l.state.Allowance(owner, spender)
	if err != nil {
		return nil, err
	}
	return allowance.ToBig(), nil
}

// Mint credits freshly created receipt tokens to the account and grows the
// total supply. Emits a transfer from the zero address.
func (l *Ledger) Mint(to common.Address, amount *big.Int) error {
	if to == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	word, err := toWord(amount)
	if err != nil {
		return err
	}
	supply, err := l.state.TotalSupply()
	if err != nil {
		return err
	}
	newSupply, overflow := new(uint256.Int).AddOverflow(supply, word)
	if overflow {
		return poolerr.ErrInvalidAmount
	}
	balance, err := l.state.BalanceOf(to)
	if err != nil {
		return err
	}
	// Supply is the sum of all balances, so the supply check above already
	// rules out balance overflow.
	newBalance := new(uint256.Int).Add(balance, word)
	if err := l.state.SetTotalSupply(newSupply); err != nil {
		return err
	}
	if err := l.state.SetBalance(to, newBalance); err != nil {
		return err
	}
	l.emitter.Emit(events.Transfer{From: zeroAddress, To: to, Amount: word.ToBig()})
	return nil
}

// Burn destroys receipt tokens held by the account and shrinks the total
// supply. Emits a transfer to the zero address.
func (l *Ledger) Burn(from common.Address, amount *big.Int) error {
	if from == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	word, err := toWord(amount)
	if err != nil {
		return err
	}
	balance, err := l.state.BalanceOf(from)
	if err != nil {
		return err
	}
	if balance.Lt(word) {
		return poolerr.ErrInsufficientBalance
	}
	supply, err := l.state.TotalSupply()
	if err != nil {
		return err
	}
	if err := l.state.SetBalance(from, new(uint256.Int).Sub(balance, word)); err != nil {
		return err
	}
	if err := l.state.SetTotalSupply(new(uint256.Int).Sub(supply, word)); err != nil {
		return err
	}
	l.emitter.Emit(events.Transfer{From: from, To: zeroAddress, Amount: word.ToBig()})
	return nil
}

// Transfer moves receipt tokens between two accounts.
func (l *Ledger) Transfer(from, to common.Address, amount *big.Int) error {
	if from == zeroAddress || to == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	word, err := toWord(amount)
	if err != nil {
		return err
	}
	fromBalance, err := l.state.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBalance.Lt(word) {
		return poolerr.ErrInsufficientBalance
	}
	if err := l.state.SetBalance(from, new(uint256.Int).Sub(fromBalance, word)); err != nil {
		return err
	}
	// Read the destination only after the debit so a self-transfer credits
	// the already-debited balance instead of resurrecting the original.
	toBalance, err := l.state.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := l.state.SetBalance(to, new(uint256.Int).Add(toBalance, word)); err != nil {
		return err
	}
	l.emitter.Emit(events.Transfer{From: from, To: to, Amount: word.ToBig()})
	return nil
}

// Approve overwrites the allowance granted by owner to spender.
func (l *Ledger) Approve(owner, spender common.Address, amount *big.Int) error {
	if owner == zeroAddress || spender == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	word, err := toWord(amount)
	if err != nil {
		return err
	}
	if err := l.state.SetAllowance(owner, spender, word); err != nil {
		return err
	}
	l.emitter.Emit(events.Approval{Owner: owner, Spender: spender, Amount: word.ToBig()})
	return nil
}

// TransferFrom moves receipt tokens on behalf of the balance owner, consuming
// the spender's allowance. The allowance is checked before any balance is
// touched, and its decrement emits an approval event for the new remainder.
func (l *Ledger) TransferFrom(spender, from, to common.Address, amount *big.Int) error {
	if spender == zeroAddress || from == zeroAddress || to == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	word, err := toWord(amount)
	if err != nil {
		return err
	}
	allowance, err := l.state.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Lt(word) {
		return poolerr.ErrInsufficientAllowance
	}
	if err := l.Transfer(from, to, amount); err != nil {
		return err
	}
	remaining := new(uint256.Int).Sub(allowance, word)
	return l.Approve(from, spender, remaining.ToBig())
}
