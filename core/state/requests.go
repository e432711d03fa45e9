package state

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// WithdrawalRequest is a single redemption record. Immutable once created
// except for the Claimed flag; never deleted.
type WithdrawalRequest struct {
	ID            uint64
	Owner         common.Address
	ReceiptAmount *big.Int
	RequestUnix   uint64
	Claimed       bool
}

func requestKey(id uint64) []byte {
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], id)
	return prefixedKey(requestPrefix, idBytes[:])
}

func requestIndexKey(owner common.Address) []byte {
	return prefixedKey(requestIndexPrefix, owner.Bytes())
}

// RequestCounter returns the next withdrawal request identifier. Identifiers
// are sequential and never reused.
func (m *Manager) RequestCounter() (uint64, error) {
	var counter uint64
	if _, err := m.load(requestCounterKey, &counter); err != nil {
		return 0, err
	}
	return counter, nil
}

// SetRequestCounter overwrites the next withdrawal request identifier.
func (m *Manager) SetRequestCounter(counter uint64) error {
	return m.store(requestCounterKey, counter)
}

// WithdrawalRequest returns the stored request and whether it exists.
func (m *Manager) WithdrawalRequest(id uint64) (*WithdrawalRequest, bool, error) {
	req := &WithdrawalRequest{}
	ok, err := m.load(requestKey(id), req)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	if req.ReceiptAmount == nil {
		req.ReceiptAmount = big.NewInt(0)
	}
	return req, true, nil
}

// PutWithdrawalRequest stores the request record under its identifier.
func (m *Manager) PutWithdrawalRequest(req *WithdrawalRequest) error {
	stored := *req
	if stored.ReceiptAmount == nil {
		stored.ReceiptAmount = big.NewInt(0)
	}
	return m.store(requestKey(req.ID), &stored)
}

// RequestsByOwner returns the append-only sequence of request identifiers
// opened by the owner, oldest first.
func (m *Manager) RequestsByOwner(owner common.Address) ([]uint64, error) {
	var ids []uint64
	if _, err := m.load(requestIndexKey(owner), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AppendOwnerRequest appends a request identifier to the owner's index.
func (m *Manager) AppendOwnerRequest(owner common.Address, id uint64) error {
	ids, err := m.RequestsByOwner(owner)
	if err != nil {
		return err
	}
	return m.store(requestIndexKey(owner), append(ids, id))
}
