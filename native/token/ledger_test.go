package token

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	poolerr "liquidstake/core/errors"
	"liquidstake/core/events"
	"liquidstake/core/state"
	"liquidstake/storage"
)

type recordingEmitter struct {
	events []events.Event
}

func (r *recordingEmitter) Emit(evt events.Event) {
	r.events = append(r.events, evt)
}

func (r *recordingEmitter) last() events.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func testAddress(fill byte) common.Address {
	var addr common.Address
	for i := range addr {
		addr[i] = fill
	}
	return addr
}

var (
	alice = testAddress(0xAA)
	bob   = testAddress(0xBB)
	carol = testAddress(0xCC)
)

func newTestLedger(t *testing.T) (*Ledger, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	ledger := NewLedger(state.NewManager(storage.NewMemDB()))
	ledger.SetEmitter(emitter)
	return ledger, emitter
}

func mustBalance(t *testing.T, ledger *Ledger, addr common.Address, want int64) {
	t.Helper()
	got, err := ledger.BalanceOf(addr)
	if err != nil {
		t.Fatalf("balance of %x: %v", addr, err)
	}
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("expected balance %d for %x, got %s", want, addr, got)
	}
}

func TestMintAndBurn(t *testing.T) {
	ledger, emitter := newTestLedger(t)
	if err := ledger.Mint(common.Address{}, big.NewInt(1)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address on mint, got %v", err)
	}
	if err := ledger.Mint(alice, big.NewInt(-1)); !errors.Is(err, poolerr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for negative mint, got %v", err)
	}
	if err := ledger.Mint(alice, big.NewInt(500)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	mustBalance(t, ledger, alice, 500)
	supply, err := ledger.TotalSupply()
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if supply.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("expected supply 500, got %s", supply)
	}
	transfer, ok := emitter.last().(events.Transfer)
	if !ok {
		t.Fatalf("expected transfer event, got %T", emitter.last())
	}
	if transfer.From != (common.Address{}) || transfer.To != alice {
		t.Fatalf("mint transfer endpoints wrong: %+v", transfer)
	}

	if err := ledger.Burn(alice, big.NewInt(501)); !errors.Is(err, poolerr.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance on over-burn, got %v", err)
	}
	if err := ledger.Burn(alice, big.NewInt(200)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	mustBalance(t, ledger, alice, 300)
	supply, err = ledger.TotalSupply()
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if supply.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("expected supply 300, got %s", supply)
	}
	transfer, ok = emitter.last().(events.Transfer)
	if !ok {
		t.Fatalf("expected transfer event, got %T", emitter.last())
	}
	if transfer.From != alice || transfer.To != (common.Address{}) {
		t.Fatalf("burn transfer endpoints wrong: %+v", transfer)
	}
}

func TestMintRejectsSupplyOverflow(t *testing.T) {
	ledger, _ := newTestLedger(t)
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if err := ledger.Mint(alice, max); err != nil {
		t.Fatalf("mint max: %v", err)
	}
	if err := ledger.Mint(bob, big.NewInt(1)); !errors.Is(err, poolerr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount on supply overflow, got %v", err)
	}
	over := new(big.Int).Lsh(big.NewInt(1), 256)
	if err := ledger.Mint(bob, over); !errors.Is(err, poolerr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for 2^256, got %v", err)
	}
	mustBalance(t, ledger, bob, 0)
}

func TestTransfer(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(alice, common.Address{}, big.NewInt(10)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address, got %v", err)
	}
	if err := ledger.Transfer(alice, bob, big.NewInt(101)); !errors.Is(err, poolerr.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if err := ledger.Transfer(alice, bob, big.NewInt(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	mustBalance(t, ledger, alice, 60)
	mustBalance(t, ledger, bob, 40)
	// Zero-amount transfers are legal no-ops.
	if err := ledger.Transfer(alice, bob, big.NewInt(0)); err != nil {
		t.Fatalf("zero transfer: %v", err)
	}
	mustBalance(t, ledger, alice, 60)
}

func TestSelfTransferPreservesSupply(t *testing.T) {
	ledger, emitter := newTestLedger(t)
	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(alice, alice, big.NewInt(40)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	mustBalance(t, ledger, alice, 100)
	supply, err := ledger.TotalSupply()
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if supply.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("self transfer changed supply: %s", supply)
	}
	// The movement is still visible downstream.
	transfer, ok := emitter.last().(events.Transfer)
	if !ok {
		t.Fatalf("expected transfer event, got %T", emitter.last())
	}
	if transfer.From != alice || transfer.To != alice || transfer.Amount.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("unexpected self-transfer event: %+v", transfer)
	}
	// A self delegated transfer takes the same balance path.
	if err := ledger.Approve(alice, bob, big.NewInt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := ledger.TransferFrom(bob, alice, alice, big.NewInt(30)); err != nil {
		t.Fatalf("self transfer from: %v", err)
	}
	mustBalance(t, ledger, alice, 100)
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	ledger, emitter := newTestLedger(t)
	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Approve(alice, bob, big.NewInt(30)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	allowance, err := ledger.Allowance(alice, bob)
	if err != nil {
		t.Fatalf("allowance: %v", err)
	}
	if allowance.Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("expected allowance 30, got %s", allowance)
	}

	if err := ledger.TransferFrom(bob, alice, carol, big.NewInt(31)); !errors.Is(err, poolerr.ErrInsufficientAllowance) {
		t.Fatalf("expected insufficient allowance, got %v", err)
	}
	if err := ledger.TransferFrom(bob, alice, carol, big.NewInt(20)); err != nil {
		t.Fatalf("transfer from: %v", err)
	}
	mustBalance(t, ledger, alice, 80)
	mustBalance(t, ledger, carol, 20)
	allowance, err = ledger.Allowance(alice, bob)
	if err != nil {
		t.Fatalf("allowance: %v", err)
	}
	if allowance.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("expected remaining allowance 10, got %s", allowance)
	}
	// The decrement is surfaced as a fresh approval event.
	approval, ok := emitter.last().(events.Approval)
	if !ok {
		t.Fatalf("expected approval event last, got %T", emitter.last())
	}
	if approval.Amount.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("expected approval remainder 10, got %s", approval.Amount)
	}
}

func TestTransferFromRejectsZeroAddressesUpFront(t *testing.T) {
	ledger, emitter := newTestLedger(t)
	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Approve(alice, bob, big.NewInt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	seen := len(emitter.events)

	if err := ledger.TransferFrom(common.Address{}, alice, carol, big.NewInt(0)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address for zero spender, got %v", err)
	}
	if err := ledger.TransferFrom(bob, common.Address{}, carol, big.NewInt(10)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address for zero source, got %v", err)
	}
	if err := ledger.TransferFrom(bob, alice, common.Address{}, big.NewInt(10)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address for zero destination, got %v", err)
	}
	// Rejected calls leave no trace: no balance movement, no events.
	if len(emitter.events) != seen {
		t.Fatalf("rejected transferFrom emitted %d events", len(emitter.events)-seen)
	}
	mustBalance(t, ledger, alice, 100)
	mustBalance(t, ledger, carol, 0)
}

func TestTransferFromChecksAllowanceBeforeBalance(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.Mint(alice, big.NewInt(5)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Approve(alice, bob, big.NewInt(3)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// Amount exceeds both the allowance and the balance; the allowance guard
	// fires first.
	if err := ledger.TransferFrom(bob, alice, carol, big.NewInt(10)); !errors.Is(err, poolerr.ErrInsufficientAllowance) {
		t.Fatalf("expected insufficient allowance to win, got %v", err)
	}
	// Amount covered by the allowance but not the balance.
	if err := ledger.Approve(alice, bob, big.NewInt(10)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := ledger.TransferFrom(bob, alice, carol, big.NewInt(10)); !errors.Is(err, poolerr.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	// The failed transfer must not have consumed the allowance.
	allowance, err := ledger.Allowance(alice, bob)
	if err != nil {
		t.Fatalf("allowance: %v", err)
	}
	if allowance.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("expected allowance untouched at 10, got %s", allowance)
	}
}

func TestApproveOverwrites(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.Approve(common.Address{}, bob, big.NewInt(1)); !errors.Is(err, poolerr.ErrZeroAddress) {
		t.Fatalf("expected zero address, got %v", err)
	}
	if err := ledger.Approve(alice, bob, big.NewInt(100)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := ledger.Approve(alice, bob, big.NewInt(7)); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	allowance, err := ledger.Allowance(alice, bob)
	if err != nil {
		t.Fatalf("allowance: %v", err)
	}
	if allowance.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("expected allowance overwritten to 7, got %s", allowance)
	}
}
