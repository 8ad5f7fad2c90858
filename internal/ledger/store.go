package ledger

import (
	"encoding/json"
	"sync"
	"time"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/logger"
	"nestegg/internal/state"
	"nestegg/internal/uuid"
)

// Slot keys under which the ledger persists its collections. The notification
// generator reads the same slots at startup for its independent snapshot.
const (
	SlotInvestments  = "investments"
	SlotTransactions = "transactions"
)

// Store is the sole authority over the investment and transaction
// collections. Every mutation runs to completion, including its persistence
// write, under one lock before the next can be observed, so the balance
// invariant holds at every externally visible point.
type Store struct {
	mu           sync.Mutex
	persist      state.Store
	investments  []Investment
	transactions []Transaction
	subscribers  []func()

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

// NewStore builds a store hydrated from the persisted slots. A missing or
// unparseable slot falls back to an empty collection rather than failing:
// losing a corrupt blob is recoverable, refusing to start is not.
func NewStore(persist state.Store) *Store {
	s := &Store{
		persist: persist,
		now:     time.Now,
		newID:   uuid.New,
	}
	s.investments = loadSlot[Investment](persist, SlotInvestments)
	s.transactions = loadSlot[Transaction](persist, SlotTransactions)
	return s
}

func loadSlot[T any](persist state.Store, key string) []T {
	raw, err := persist.Load(key)
	if err != nil {
		if err != state.ErrSlotNotFound {
			logger.Get().Warnw("failed to load ledger slot, starting empty", "slot", key, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Get().Warnw("failed to parse ledger slot, starting empty", "slot", key, "error", err)
		return nil
	}
	return items
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run outside the store lock, so they may read snapshots freely.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notifyLocked() []func() {
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// AddInvestment appends a new investment built from the draft. The draft is
// not re-validated here; ValidateInvestment is a separate step callers run
// first. CurrentBalance starts equal to InitialBalance.
func (s *Store) AddInvestment(draft Draft) (Investment, error) {
	var initial float64
	if draft.InitialBalance != nil {
		initial = *draft.InitialBalance
	}

	inv := Investment{
		ID:             s.newID(),
		Name:           draft.Name,
		Type:           draft.Type,
		InitialBalance: initial,
		CurrentBalance: initial,
		Description:    draft.Description,
		CreatedAt:      s.now(),
	}

	s.mu.Lock()
	s.investments = append(s.investments, inv)
	if err := s.saveInvestmentsLocked(); err != nil {
		s.investments = s.investments[:len(s.investments)-1]
		s.mu.Unlock()
		return Investment{}, err
	}
	subs := s.notifyLocked()
	s.mu.Unlock()

	runAll(subs)
	return inv, nil
}

// RecordTransaction applies a deposit or withdrawal to the referenced
// investment. The transaction's NewBalance and the investment's
// CurrentBalance are written in the same locked mutation so the two can
// never drift. An unknown investment id is an explicit error, not a no-op.
// Withdrawals may drive the balance negative; no floor is enforced.
func (s *Store) RecordTransaction(investmentID string, amount float64, txType TransactionType, description string) (Transaction, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.investments {
		if s.investments[i].ID == investmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Transaction{}, apperrors.ErrInvestmentNotFound
	}

	newBalance := s.investments[idx].CurrentBalance - amount
	if txType == TransactionDeposit {
		newBalance = s.investments[idx].CurrentBalance + amount
	}

	tx := Transaction{
		ID:           s.newID(),
		InvestmentID: investmentID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		Timestamp:    s.now(),
		NewBalance:   newBalance,
	}

	prevBalance := s.investments[idx].CurrentBalance
	s.transactions = append(s.transactions, tx)
	s.investments[idx].CurrentBalance = newBalance

	if err := s.saveAllLocked(); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-1]
		s.investments[idx].CurrentBalance = prevBalance
		s.mu.Unlock()
		return Transaction{}, err
	}
	subs := s.notifyLocked()
	s.mu.Unlock()

	runAll(subs)
	return tx, nil
}

// Investment returns the investment with the given id.
func (s *Store) Investment(id string) (Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.investments {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Investment{}, apperrors.ErrInvestmentNotFound
}

// Investments returns a snapshot copy of the investment collection.
func (s *Store) Investments() []Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Investment, len(s.investments))
	copy(out, s.investments)
	return out
}

// Transactions returns a snapshot copy of the transaction collection in
// recording order.
func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// InvestmentTransactions returns the transactions recorded against one
// investment, in recording order. The investment must exist.
func (s *Store) InvestmentTransactions(investmentID string) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.investments {
		if s.investments[i].ID == investmentID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrInvestmentNotFound
	}

	var out []Transaction
	for _, tx := range s.transactions {
		if tx.InvestmentID == investmentID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ReplaceAll swaps in entirely new collections, trusting the supplied
// balances verbatim. Used by import after the incoming set has been
// validated as a whole.
func (s *Store) ReplaceAll(investments []Investment, transactions []Transaction) error {
	invs := make([]Investment, len(investments))
	copy(invs, investments)
	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)

	s.mu.Lock()
	prevInvs, prevTxs := s.investments, s.transactions
	s.investments = invs
	s.transactions = txs
	if err := s.saveAllLocked(); err != nil {
		s.investments, s.transactions = prevInvs, prevTxs
		s.mu.Unlock()
		return err
	}
	subs := s.notifyLocked()
	s.mu.Unlock()

	runAll(subs)
	return nil
}

// Reset clears both collections.
func (s *Store) Reset() error {
	return s.ReplaceAll(nil, nil)
}

func (s *Store) saveInvestmentsLocked() error {
	return s.saveSlotLocked(SlotInvestments, s.investments)
}

func (s *Store) saveAllLocked() error {
	if err := s.saveSlotLocked(SlotInvestments, s.investments); err != nil {
		return err
	}
	return s.saveSlotLocked(SlotTransactions, s.transactions)
}

func (s *Store) saveSlotLocked(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.persist.Save(key, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
