package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// TokenMetadata describes the receipt token. Written once at initialization.
type TokenMetadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// SetTokenMetadata persists the receipt-token descriptor.
func (m *Manager) SetTokenMetadata(meta TokenMetadata) error {
	return m.store(tokenMetaKey, &meta)
}

// TokenMetadata returns the receipt-token descriptor, or zero values when the
// pool has not been initialized.
func (m *Manager) TokenMetadata() (TokenMetadata, error) {
	meta := TokenMetadata{}
	if _, err := m.load(tokenMetaKey, &meta); err != nil {
		return TokenMetadata{}, err
	}
	return meta, nil
}

func balanceKey(addr common.Address) []byte {
	return prefixedKey(balancePrefix, addr.Bytes())
}

func allowanceKey(owner, spender common.Address) []byte {
	return prefixedKey(allowancePrefix, owner.Bytes(), spender.Bytes())
}

func (m *Manager) loadWord(key []byte) (*uint256.Int, error) {
	var raw []byte
	ok, err := m.load(key, &raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return uint256.NewInt(0), nil
	}
	if len(raw) > 32 {
		return nil, fmt.Errorf("state: word exceeds 256 bits")
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (m *Manager) storeWord(key []byte, value *uint256.Int) error {
	if value == nil || value.IsZero() {
		return m.delete(key)
	}
	return m.store(key, value.Bytes())
}

// BalanceOf returns the receipt-token balance of the account. Accounts never
// written read back as zero.
func (m *Manager) BalanceOf(addr common.Address) (*uint256.Int, error) {
	return m.loadWord(balanceKey(addr))
}

// SetBalance overwrites the receipt-token balance of the account. Zero
// balances are elided from storage.
func (m *Manager) SetBalance(addr common.Address, value *uint256.Int) error {
	return m.storeWord(balanceKey(addr), value)
}

// TotalSupply returns the outstanding receipt-token supply.
func (m *Manager) TotalSupply() (*uint256.Int, error) {
	return m.loadWord(supplyKey)
}

// SetTotalSupply overwrites the outstanding receipt-token supply.
func (m *Manager) SetTotalSupply(value *uint256.Int) error {
	return m.storeWord(supplyKey, value)
}

// Allowance returns the remaining allowance granted by owner to spender.
func (m *Manager) Allowance(owner, spender common.Address) (*uint256.Int, error) {
	return m.loadWord(allowanceKey(owner, spender))
}

// SetAllowance overwrites the allowance granted by owner to spender.
func (m *Manager) SetAllowance(owner, spender common.Address, value *uint256.Int) error {
	return m.storeWord(allowanceKey(owner, spender), value)
}
