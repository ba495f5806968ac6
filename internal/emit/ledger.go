package emit

import "sync"

// Ledger stores emitted signals in memory for quick inspection.
type Ledger struct {
	mu      sync.Mutex
	signals []Signal
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{signals: make([]Signal, 0, capacity)}
}

// Emit appends a signal to the ledger.
func (l *Ledger) Emit(sig Signal) {
	l.mu.Lock()
	l.signals = append(l.signals, sig)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded signals.
func (l *Ledger) Snapshot() []Signal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Signal, len(l.signals))
	copy(out, l.signals)
	return out
}

// Reset clears all stored signals.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.signals = l.signals[:0]
	l.mu.Unlock()
}
