// Package stakepool implements the pooled staking engine: deposits mint
// receipt tokens pro rata, the pooled value accrues time-weighted yield, and
// redemptions run through a delayed request/claim queue. All public
// operations are expected to execute strictly serialized by the hosting
// environment.
package stakepool

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	poolerr "liquidstake/core/errors"
	"liquidstake/core/events"
	"liquidstake/core/state"
	"liquidstake/native/token"
)

// ErrAlreadyInitialized is returned when Initialize runs against a pool that
// already has an owner.
var ErrAlreadyInitialized = errors.New("stakepool: already initialized")

var (
	errNilState       = errors.New("stakepool: state not configured")
	errNotInitialized = errors.New("stakepool: not initialized")
)

// Engine wires the staking pool business logic with external state, the
// receipt-token ledger, and event emission.
type Engine struct {
	state   *state.Manager
	token   *token.Ledger
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a pool engine bound to the provided state manager. The
// receipt-token ledger shares the same state and emitter.
func NewEngine(mgr *state.Manager) *Engine {
	e := &Engine{
		state:   mgr,
		token:   token.NewLedger(mgr),
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
	return e
}

// Token exposes the receipt-token ledger for direct transfer and allowance
// operations.
func (e *Engine) Token() *token.Ledger { return e.token }

// SetEmitter configures the event emitter used by the engine and the ledger.
// Passing nil resets both to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	e.emitter = emitter
	e.token.SetEmitter(emitter)
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) now() uint64 {
	ts := e.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

var zeroAddress = common.Address{}

// Initialize writes the one-time genesis state: token metadata, default
// parameters, and the initial owner. Emits an ownership transfer from the
// zero address.
func (e *Engine) Initialize(owner common.Address) error {
	if e.state == nil {
		return errNilState
	}
	if owner == zeroAddress {
		return poolerr.ErrZeroAddress
	}
	admin, err := e.state.AdminState()
	if err != nil {
		return err
	}
	if admin.Owner != zeroAddress {
		return ErrAlreadyInitialized
	}
	if err := e.state.SetTokenMetadata(state.TokenMetadata{
		Name:     TokenName,
		Symbol:   TokenSymbol,
		Decimals: TokenDecimals,
	}); err != nil {
		return err
	}
	if err := e.state.SetAdminState(&state.AdminState{
		Owner:               owner,
		Paused:              false,
		WithdrawalDelaySecs: DefaultWithdrawalDelaySecs,
	}); err != nil {
		return err
	}
	pool := &state.PoolState{
		TotalPooled:     big.NewInt(0),
		AprBps:          DefaultAprBps,
		LastAccrualUnix: e.now(),
		AccruedTotal:    big.NewInt(0),
		PendingLocked:   big.NewInt(0),
	}
	if err := e.state.SetPoolState(pool); err != nil {
		return err
	}
	e.emitter.Emit(events.OwnershipTransferred{PreviousOwner: zeroAddress, NewOwner: owner})
	return nil
}

func (e *Engine) admin() (*state.AdminState, error) {
	if e.state == nil {
		return nil, errNilState
	}
	admin, err := e.state.AdminState()
	if err != nil {
		return nil, err
	}
	if admin.Owner == zeroAddress {
		return nil, errNotInitialized
	}
	return admin, nil
}

func (e *Engine) requireOwner(caller common.Address) (*state.AdminState, error) {
	admin, err := e.admin()
	if err != nil {
		return nil, err
	}
	if caller != admin.Owner {
		return nil, poolerr.ErrUnauthorized
	}
	return admin, nil
}

func (e *Engine) whenNotPaused() error {
	admin, err := e.admin()
	if err != nil {
		return err
	}
	if admin.Paused {
		return poolerr.ErrPaused
	}
	return nil
}

// effectiveSupply is the receipt-supply denominator used by every rate
// conversion: the circulating ledger supply plus the tokens locked in open
// withdrawal requests, which retain their pro-rata claim until claimed.
func (e *Engine) effectiveSupply(pool *state.PoolState) (*big.Int, error) {
	supply, err := e.token.TotalSupply()
	if err != nil {
		return nil, err
	}
	return supply.Add(supply, pool.PendingLocked), nil
}

// Stake deposits the attached base-asset value and mints receipt tokens at
// the rate in effect after a fresh accrual.
func (e *Engine) Stake(caller common.Address, value *big.Int) error {
	if err := e.whenNotPaused(); err != nil {
		return err
	}
	if value == nil || value.Sign() <= 0 {
		return poolerr.ErrInvalidAmount
	}
	if err := e.Accrue(); err != nil {
		return err
	}
	pool, err := e.state.PoolState()
	if err != nil {
		return err
	}
	supply, err := e.effectiveSupply(pool)
	if err != nil {
		return err
	}
	minted := ToReceipt(value, pool.TotalPooled, supply)

	pool.TotalPooled = new(big.Int).Add(pool.TotalPooled, value)
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
	if err := e.token.Mint(caller, minted); err != nil {
		return err
	}
	e.emitter.Emit(events.Staked{User: caller, BaseAmount: value, ReceiptMinted: minted})
	return nil
}

// ExchangeRate returns the current base-asset value of one whole receipt
// token, scaled by RateScale. Read-only; does not accrue.
func (e *Engine) ExchangeRate() (*big.Int, error) {
	pool, err := e.state.PoolState()
	if err != nil {
		return nil, err
	}
	supply, err := e.effectiveSupply(pool)
	if err != nil {
		return nil, err
	}
	return Rate(pool.TotalPooled, supply), nil
}

// ReceiptToBase converts a receipt-token amount at the current rate.
// Read-only; does not accrue.
func (e *Engine) ReceiptToBase(amount *big.Int) (*big.Int, error) {
	pool, err := e.state.PoolState()
	if err != nil {
		return nil, err
	}
	supply, err := e.effectiveSupply(pool)
	if err != nil {
		return nil, err
	}
	return ToBase(amount, pool.TotalPooled, supply), nil
}

// BaseToReceipt converts a base-asset amount at the current rate. Read-only;
// does not accrue.
func (e *Engine) BaseToReceipt(amount *big.Int) (*big.Int, error) {
	pool, err := e.state.PoolState()
	if err != nil {
		return nil, err
	}
	supply, err := e.effectiveSupply(pool)
	if err != nil {
		return nil, err
	}
	return ToReceipt(amount, pool.TotalPooled, supply), nil
}

// PoolState returns a copy of the persisted pool accounting record.
func (e *Engine) PoolState() (*state.PoolState, error) {
	return e.state.PoolState()
}

// Owner returns the current pool owner.
func (e *Engine) Owner() (common.Address, error) {
	admin, err := e.state.AdminState()
	if err != nil {
		return common.Address{}, err
	}
	return admin.Owner, nil
}

// IsPaused reports the lifecycle toggle.
func (e *Engine) IsPaused() (bool, error) {
	admin, err := e.state.AdminState()
	if err != nil {
		return false, err
	}
	return admin.Paused, nil
}

// WithdrawalDelay returns the currently configured claim delay in seconds.
func (e *Engine) WithdrawalDelay() (uint64, error) {
	admin, err := e.state.AdminState()
	if err != nil {
		return 0, err
	}
	return admin.WithdrawalDelaySecs, nil
}

// VaultBalance returns the native base-asset balance backing payouts.
func (e *Engine) VaultBalance() (*big.Int, error) {
	return e.state.VaultBalance()
}

// Metadata returns the receipt-token descriptor.
func (e *Engine) Metadata() (state.TokenMetadata, error) {
	return e.state.TokenMetadata()
}

// PaidOut returns the cumulative base asset the vault has transferred to the
// account.
func (e *Engine) PaidOut(addr common.Address) (*big.Int, error) {
	return e.state.PaidOut(addr)
}
