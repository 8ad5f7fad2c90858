package ledger

import (
	"fmt"
	"testing"
	"time"

	"nestegg/internal/testutil"
)

// newTestStore returns a store over an in-memory persistence layer with
// deterministic ids and timestamps.
func newTestStore(t *testing.T) (*Store, *testutil.MemStore) {
	t.Helper()

	mem := testutil.NewMemStore()
	s := NewStore(mem)

	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	base := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}
	return s, mem
}

func floatPtr(v float64) *float64 { return &v }

func addInvestment(t *testing.T, s *Store, name string, initial float64) Investment {
	t.Helper()
	inv, err := s.AddInvestment(Draft{Name: name, Type: TypeStocks, InitialBalance: floatPtr(initial)})
	testutil.AssertNoError(t, err)
	return inv
}

func TestAddInvestment(t *testing.T) {
	t.Run("current_balance_starts_at_initial", func(t *testing.T) {
		s, _ := newTestStore(t)

		inv := addInvestment(t, s, "Index Fund", 1000)
		if inv.ID == "" {
			t.Fatal("expected non-empty investment ID")
		}
		if inv.InitialBalance != 1000 || inv.CurrentBalance != 1000 {
			t.Errorf("expected initial and current balance 1000, got %v / %v", inv.InitialBalance, inv.CurrentBalance)
		}
		if inv.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}

		invs := s.Investments()
		if len(invs) != 1 || invs[0].ID != inv.ID {
			t.Fatalf("expected store to hold the new investment, got %v", invs)
		}
	})

	t.Run("zero_initial_balance", func(t *testing.T) {
		s, _ := newTestStore(t)

		inv := addInvestment(t, s, "Empty Jar", 0)
		if inv.CurrentBalance != 0 {
			t.Errorf("expected zero balance, got %v", inv.CurrentBalance)
		}
	})

	t.Run("persist_failure_rolls_back", func(t *testing.T) {
		s, mem := newTestStore(t)
		mem.FailSaves = true

		_, err := s.AddInvestment(Draft{Name: "Doomed", Type: TypeBonds, InitialBalance: floatPtr(50)})
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if len(s.Investments()) != 0 {
			t.Error("expected no investment after failed persist")
		}
	})
}

func TestRecordTransaction(t *testing.T) {
	t.Run("deposit_then_overdrawing_withdrawal", func(t *testing.T) {
		s, _ := newTestStore(t)
		inv := addInvestment(t, s, "Brokerage", 1000)

		tx1, err := s.RecordTransaction(inv.ID, 200, TransactionDeposit, "bonus")
		testutil.AssertNoError(t, err)
		if tx1.NewBalance != 1200 {
			t.Errorf("expected new balance 1200 after deposit, got %v", tx1.NewBalance)
		}

		tx2, err := s.RecordTransaction(inv.ID, 1300, TransactionWithdrawal, "")
		testutil.AssertNoError(t, err)
		if tx2.NewBalance != -100 {
			t.Errorf("expected new balance -100 after withdrawal, got %v", tx2.NewBalance)
		}

		got, err := s.Investment(inv.ID)
		testutil.AssertNoError(t, err)
		if got.CurrentBalance != -100 {
			t.Errorf("expected investment balance -100, got %v", got.CurrentBalance)
		}
		if got.InitialBalance != 1000 {
			t.Errorf("initial balance must never change, got %v", got.InitialBalance)
		}
	})

	t.Run("unknown_investment", func(t *testing.T) {
		s, _ := newTestStore(t)

		_, err := s.RecordTransaction("no-such-id", 100, TransactionDeposit, "")
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")

		if len(s.Transactions()) != 0 {
			t.Error("expected no transaction recorded for unknown investment")
		}
	})

	t.Run("persist_failure_rolls_back_both_sides", func(t *testing.T) {
		s, mem := newTestStore(t)
		inv := addInvestment(t, s, "Brokerage", 500)
		mem.FailSaves = true

		_, err := s.RecordTransaction(inv.ID, 100, TransactionDeposit, "")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		got, lookupErr := s.Investment(inv.ID)
		testutil.AssertNoError(t, lookupErr)
		if got.CurrentBalance != 500 {
			t.Errorf("expected balance restored to 500, got %v", got.CurrentBalance)
		}
		if len(s.Transactions()) != 0 {
			t.Error("expected transaction list unchanged after failed persist")
		}
	})

	t.Run("balances_follow_recording_order", func(t *testing.T) {
		s, _ := newTestStore(t)
		inv := addInvestment(t, s, "Ladder", 100)

		amounts := []float64{10, 20, 30}
		want := 100.0
		for _, amount := range amounts {
			tx, err := s.RecordTransaction(inv.ID, amount, TransactionDeposit, "")
			testutil.AssertNoError(t, err)
			want += amount
			if tx.NewBalance != want {
				t.Errorf("expected running balance %v, got %v", want, tx.NewBalance)
			}
		}
	})
}

func TestInvestmentTransactions(t *testing.T) {
	t.Run("filters_by_investment", func(t *testing.T) {
		s, _ := newTestStore(t)
		a := addInvestment(t, s, "Alpha", 100)
		b := addInvestment(t, s, "Beta", 100)

		_, err := s.RecordTransaction(a.ID, 10, TransactionDeposit, "")
		testutil.AssertNoError(t, err)
		_, err = s.RecordTransaction(b.ID, 20, TransactionDeposit, "")
		testutil.AssertNoError(t, err)
		_, err = s.RecordTransaction(a.ID, 5, TransactionWithdrawal, "")
		testutil.AssertNoError(t, err)

		txs, err := s.InvestmentTransactions(a.ID)
		testutil.AssertNoError(t, err)
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions for Alpha, got %d", len(txs))
		}
		if txs[0].Amount != 10 || txs[1].Amount != 5 {
			t.Errorf("expected recording order preserved, got %v then %v", txs[0].Amount, txs[1].Amount)
		}
	})

	t.Run("unknown_investment", func(t *testing.T) {
		s, _ := newTestStore(t)

		_, err := s.InvestmentTransactions("missing")
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}

func TestStoreHydration(t *testing.T) {
	t.Run("survives_restart", func(t *testing.T) {
		mem := testutil.NewMemStore()
		s := NewStore(mem)

		inv, err := s.AddInvestment(Draft{Name: "Durable", Type: TypeETF, InitialBalance: floatPtr(250)})
		testutil.AssertNoError(t, err)
		_, err = s.RecordTransaction(inv.ID, 50, TransactionDeposit, "")
		testutil.AssertNoError(t, err)

		reloaded := NewStore(mem)
		got, err := reloaded.Investment(inv.ID)
		testutil.AssertNoError(t, err)
		if got.CurrentBalance != 300 {
			t.Errorf("expected rehydrated balance 300, got %v", got.CurrentBalance)
		}
		if len(reloaded.Transactions()) != 1 {
			t.Errorf("expected 1 rehydrated transaction, got %d", len(reloaded.Transactions()))
		}
	})

	t.Run("corrupt_slot_starts_empty", func(t *testing.T) {
		mem := testutil.NewMemStore()
		testutil.AssertNoError(t, mem.Save(SlotInvestments, []byte("not json")))

		s := NewStore(mem)
		if len(s.Investments()) != 0 {
			t.Error("expected empty collection for corrupt slot")
		}
	})
}

func TestReplaceAllAndReset(t *testing.T) {
	t.Run("replace_all_trusts_balances_verbatim", func(t *testing.T) {
		s, _ := newTestStore(t)
		addInvestment(t, s, "Old", 10)

		incoming := []Investment{{
			ID: "ext-1", Name: "External", Type: TypeCash,
			InitialBalance: 100, CurrentBalance: 175,
			CreatedAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		}}
		testutil.AssertNoError(t, s.ReplaceAll(incoming, nil))

		got, err := s.Investment("ext-1")
		testutil.AssertNoError(t, err)
		if got.CurrentBalance != 175 {
			t.Errorf("expected balance kept verbatim at 175, got %v", got.CurrentBalance)
		}
		if len(s.Investments()) != 1 {
			t.Errorf("expected old collection replaced, got %d investments", len(s.Investments()))
		}
	})

	t.Run("replace_all_reverts_on_persist_failure", func(t *testing.T) {
		s, mem := newTestStore(t)
		inv := addInvestment(t, s, "Keep Me", 10)
		mem.FailSaves = true

		err := s.ReplaceAll(nil, nil)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if _, lookupErr := s.Investment(inv.ID); lookupErr != nil {
			t.Error("expected previous state restored after failed persist")
		}
	})

	t.Run("reset_clears_everything", func(t *testing.T) {
		s, _ := newTestStore(t)
		inv := addInvestment(t, s, "Gone", 10)
		_, err := s.RecordTransaction(inv.ID, 1, TransactionDeposit, "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, s.Reset())
		if len(s.Investments()) != 0 || len(s.Transactions()) != 0 {
			t.Error("expected both collections empty after reset")
		}
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("fires_after_every_mutation", func(t *testing.T) {
		s, _ := newTestStore(t)

		calls := 0
		s.Subscribe(func() { calls++ })

		inv := addInvestment(t, s, "Watched", 100)
		_, err := s.RecordTransaction(inv.ID, 10, TransactionDeposit, "")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, s.Reset())

		if calls != 3 {
			t.Errorf("expected 3 callback invocations, got %d", calls)
		}
	})

	t.Run("not_fired_on_failed_mutation", func(t *testing.T) {
		s, mem := newTestStore(t)

		calls := 0
		s.Subscribe(func() { calls++ })

		mem.FailSaves = true
		_, err := s.AddInvestment(Draft{Name: "Nope", Type: TypeCash, InitialBalance: floatPtr(1)})
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if calls != 0 {
			t.Errorf("expected no callbacks after failed mutation, got %d", calls)
		}
	})

	t.Run("callback_may_read_snapshots", func(t *testing.T) {
		s, _ := newTestStore(t)

		var seen int
		s.Subscribe(func() { seen = len(s.Investments()) })

		addInvestment(t, s, "Visible", 5)
		if seen != 1 {
			t.Errorf("expected callback to observe 1 investment, got %d", seen)
		}
	})
}

func TestSnapshotIsolation(t *testing.T) {
	s, _ := newTestStore(t)
	inv := addInvestment(t, s, "Isolated", 100)

	snapshot := s.Investments()
	snapshot[0].CurrentBalance = 999999

	got, err := s.Investment(inv.ID)
	testutil.AssertNoError(t, err)
	if got.CurrentBalance != 100 {
		t.Errorf("mutating a snapshot must not affect the store, got %v", got.CurrentBalance)
	}
}
