package audit

import (
	"sync"

	"github.com/darmiel/advisor/internal/core"
)

var (
	_ core.Auditor        = (*InMemoryAuditor)(nil)
	_ core.AuditLogReader = (*InMemoryAuditor)(nil)
)

// InMemoryAuditor is an auditor that stores audit logs in memory.
// At most maxEntries are kept, older entries are discarded first.
type InMemoryAuditor struct {
	mu         sync.Mutex
	entries    []core.AuditEntry
	maxEntries int
}

func NewInMemoryAuditor(maxEntries int) *InMemoryAuditor {
	return &InMemoryAuditor{
		entries:    make([]core.AuditEntry, 0),
		maxEntries: maxEntries,
	}
}

func (i *InMemoryAuditor) Log(entry core.AuditEntry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries = append(i.entries, entry)
	if i.maxEntries > 0 && len(i.entries) > i.maxEntries {
		i.entries = i.entries[len(i.entries)-i.maxEntries:]
	}
	return nil
}

// Find returns the most recent matching entries, oldest first.
func (i *InMemoryAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return findIn(i.entries, filter, limit), nil
}

func (i *InMemoryAuditor) Close() error {
	return nil // nothing to close :)
}

func findIn(entries []core.AuditEntry, filter func(entry core.AuditEntry) bool, limit int) []core.AuditEntry {
	matches := make([]core.AuditEntry, 0)
	for _, entry := range entries {
		if filter == nil || filter(entry) {
			matches = append(matches, entry)
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches
}
