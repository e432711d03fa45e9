package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PoolState holds the value side of the accounting: the base-asset value
// backing all outstanding receipt tokens, the accrual parameters, the
// informational lifetime yield counter, and the receipt tokens burned into
// withdrawal requests that have not been claimed yet. Pending locked tokens
// still represent a pro-rata claim on the pooled value, so rate conversions
// count them alongside the circulating supply.
type PoolState struct {
	TotalPooled     *big.Int
	AprBps          uint64
	LastAccrualUnix uint64
	AccruedTotal    *big.Int
	PendingLocked   *big.Int
}

// AdminState holds the access-control and lifecycle flags.
type AdminState struct {
	Owner               common.Address
	Paused              bool
	WithdrawalDelaySecs uint64
}

type storedPoolState struct {
	TotalPooled     *big.Int
	AprBps          uint64
	LastAccrualUnix uint64
	AccruedTotal    *big.Int
	PendingLocked   *big.Int
}

func normalizePool(p *PoolState) *PoolState {
	if p == nil {
		p = &PoolState{}
	}
	if p.TotalPooled == nil {
		p.TotalPooled = big.NewInt(0)
	}
	if p.AccruedTotal == nil {
		p.AccruedTotal = big.NewInt(0)
	}
	if p.PendingLocked == nil {
		p.PendingLocked = big.NewInt(0)
	}
	return p
}

// PoolState returns the persisted pool accounting record with all big.Int
// fields non-nil.
func (m *Manager) PoolState() (*PoolState, error) {
	stored := &storedPoolState{}
	ok, err := m.load(poolStateKey, stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return normalizePool(nil), nil
	}
	return normalizePool(&PoolState{
		TotalPooled:     stored.TotalPooled,
		AprBps:          stored.AprBps,
		LastAccrualUnix: stored.LastAccrualUnix,
		AccruedTotal:    stored.AccruedTotal,
		PendingLocked:   stored.PendingLocked,
	}), nil
}

// SetPoolState overwrites the pool accounting record.
func (m *Manager) SetPoolState(p *PoolState) error {
	p = normalizePool(p)
	return m.store(poolStateKey, &storedPoolState{
		TotalPooled:     p.TotalPooled,
		AprBps:          p.AprBps,
		LastAccrualUnix: p.LastAccrualUnix,
		AccruedTotal:    p.AccruedTotal,
		PendingLocked:   p.PendingLocked,
	})
}

// AdminState returns the persisted access-control record. An uninitialized
// pool reads back with the zero owner.
func (m *Manager) AdminState() (*AdminState, error) {
	admin := &AdminState{}
	if _, err := m.load(adminStateKey, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// SetAdminState overwrites the access-control record.
func (m *Manager) SetAdminState(admin *AdminState) error {
	if admin == nil {
		admin = &AdminState{}
	}
	return m.store(adminStateKey, admin)
}

// VaultBalance returns the native base-asset balance held by the pool itself.
func (m *Manager) VaultBalance() (*big.Int, error) {
	value := new(big.Int)
	ok, err := m.load(vaultBalanceKey, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return value, nil
}

// SetVaultBalance overwrites the pool's native base-asset balance.
func (m *Manager) SetVaultBalance(value *big.Int) error {
	if value == nil {
		value = big.NewInt(0)
	}
	return m.store(vaultBalanceKey, value)
}

func payoutKey(addr common.Address) []byte {
	return prefixedKey(payoutPrefix, addr.Bytes())
}

// PaidOut returns the cumulative base asset transferred out of the vault to
// the given account. Informational; lets callers and tests observe payouts.
func (m *Manager) PaidOut(addr common.Address) (*big.Int, error) {
	value := new(big.Int)
	ok, err := m.load(payoutKey(addr), value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return value, nil
}

// AddPaidOut increments the cumulative payout counter for the account.
func (m *Manager) AddPaidOut(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	total, err := m.PaidOut(addr)
	if err != nil {
		return err
	}
	return m.store(payoutKey(addr), new(big.Int).Add(total, amount))
}
