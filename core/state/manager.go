package state

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"liquidstake/storage"
)

// Manager provides deterministic read/write access to all pool state persisted
// in the underlying key-value store. Every entity key is the keccak256 hash of
// a human-readable prefix plus the entity identifier, and every record is RLP
// encoded. Absent entries read back as zero values; writes that would store a
// zero value delete the entry instead.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager operating on the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

var (
	tokenMetaKey      = ethcrypto.Keccak256([]byte("stake/token/meta"))
	supplyKey         = ethcrypto.Keccak256([]byte("stake/token/supply"))
	poolStateKey      = ethcrypto.Keccak256([]byte("stake/pool/state"))
	adminStateKey     = ethcrypto.Keccak256([]byte("stake/pool/admin"))
	requestCounterKey = ethcrypto.Keccak256([]byte("stake/pool/request-counter"))
	vaultBalanceKey   = ethcrypto.Keccak256([]byte("stake/vault/balance"))

	balancePrefix      = []byte("stake/token/balance:")
	allowancePrefix    = []byte("stake/token/allowance:")
	requestPrefix      = []byte("stake/pool/request:")
	requestIndexPrefix = []byte("stake/pool/request-index:")
	payoutPrefix       = []byte("stake/vault/paid:")
)

func prefixedKey(prefix []byte, parts ...[]byte) []byte {
	buf := append([]byte(nil), prefix...)
	for i, part := range parts {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, part...)
	}
	return ethcrypto.Keccak256(buf)
}

func (m *Manager) load(key []byte, out interface{}) (bool, error) {
	data, ok, err := m.db.Get(key)
	if err != nil {
		return false, fmt.Errorf("state: load: %w", err)
	}
	if !ok || len(data) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, fmt.Errorf("state: decode: %w", err)
	}
	return true, nil
}

func (m *Manager) store(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}
	if err := m.db.Put(key, encoded); err != nil {
		return fmt.Errorf("state: store: %w", err)
	}
	return nil
}

func (m *Manager) delete(key []byte) error {
	if err := m.db.Delete(key); err != nil {
		return fmt.Errorf("state: delete: %w", err)
	}
	return nil
}
