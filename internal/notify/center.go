// Package notify derives advisory notifications from ledger snapshots and
// holds them until read, cleared, or expired. It never mutates the ledger.
package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/ledger"
	"nestegg/internal/logger"
	"nestegg/internal/state"
	"nestegg/internal/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Notification is a single advisory message. Initially unread.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

const (
	// lowBalanceRatio triggers a warning when an investment drops below
	// this fraction of its initial balance.
	lowBalanceRatio = 0.10
	// inactivityWindow triggers an info notice when an investment's last
	// transaction is older than this.
	inactivityWindow = 90 * 24 * time.Hour
	// retention bounds how long notifications stay in the active set.
	retention = 30 * 24 * time.Hour
)

// Center holds the active notification set, newest first.
type Center struct {
	mu            sync.Mutex
	notifications []Notification

	now func() time.Time
}

// NewCenter returns an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Add prepends a new unread notification and returns it.
func (c *Center) Add(severity Severity, title, message string) Notification {
	n := Notification{
		ID:        uuid.New(),
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.mu.Lock()
	c.notifications = append([]Notification{n}, c.notifications...)
	c.mu.Unlock()
	return n
}

// Notifications sweeps expired entries and returns a snapshot copy,
// newest first.
func (c *Center) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Unread counts notifications not yet marked read.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.notifications {
		if !c.notifications[i].Read {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read.
func (c *Center) MarkRead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

// Clear empties the active set.
func (c *Center) Clear() {
	c.mu.Lock()
	c.notifications = nil
	c.mu.Unlock()
}

// sweepLocked prunes notifications older than the retention window.
func (c *Center) sweepLocked() {
	cutoff := c.now().Add(-retention)
	kept := c.notifications[:0]
	for _, n := range c.notifications {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.notifications = kept
}

// Scan evaluates the advisory rules against a ledger snapshot and adds one
// notification per triggered rule. Additive only: scanning never marks,
// removes, or deduplicates existing entries. Returns the number added.
func (c *Center) Scan(investments []ledger.Investment, transactions []ledger.Transaction) int {
	added := 0
	now := c.now()

	for _, inv := range investments {
		if inv.CurrentBalance < inv.InitialBalance*lowBalanceRatio {
			c.Add(SeverityWarning,
				"Low Investment Balance",
				fmt.Sprintf("Your investment %q is below 10%% of initial balance.", inv.Name))
			added++
		}

		// Last transaction by recording order, not timestamp order.
		var last *ledger.Transaction
		for i := range transactions {
			if transactions[i].InvestmentID == inv.ID {
				last = &transactions[i]
			}
		}
		if last != nil && now.Sub(last.Timestamp) > inactivityWindow {
			c.Add(SeverityInfo,
				"Inactive Investment",
				fmt.Sprintf("No transactions for %q in the last 3 months.", inv.Name))
			added++
		}
	}

	c.mu.Lock()
	c.sweepLocked()
	c.mu.Unlock()

	return added
}

// ScanStore runs Scan against an independent read-only snapshot taken
// directly from the persisted slots, the way the startup scan works: it does
// not subscribe to the ledger and will not see later mutations. Missing or
// unparseable slots scan as empty.
func (c *Center) ScanStore(st state.Store) int {
	return c.Scan(
		loadSlot[ledger.Investment](st, ledger.SlotInvestments),
		loadSlot[ledger.Transaction](st, ledger.SlotTransactions),
	)
}

func loadSlot[T any](st state.Store, key string) []T {
	raw, err := st.Load(key)
	if err != nil {
		if err != state.ErrSlotNotFound {
			logger.Get().Warnw("failed to load slot for notification scan", "slot", key, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Get().Warnw("failed to parse slot for notification scan", "slot", key, "error", err)
		return nil
	}
	return items
}
