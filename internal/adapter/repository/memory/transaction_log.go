package memory

import (
	"sync"

	"github.com/avieira/paperbroker/internal/domain"
)

// TransactionLog implements domain.TransactionLog in memory. Appends are
// serialized, so history order equals execution order.
type TransactionLog struct {
	mu      sync.RWMutex
	entries map[string][]*domain.Transaction
}

// NewTransactionLog creates an empty log
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{entries: make(map[string][]*domain.Transaction)}
}

// Record appends a trade to the owner's sequence, creating it on first use
func (l *TransactionLog) Record(tx *domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[tx.Username] = append(l.entries[tx.Username], tx)
}

// History returns the owner's trades in insertion order. The returned slice
// is a copy; callers cannot disturb the log.
func (l *TransactionLog) History(username string) []*domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.entries[username]
	out := make([]*domain.Transaction, len(entries))
	copy(out, entries)
	return out
}
