package audit

import (
	"fmt"

	"github.com/darmiel/advisor/internal/core"
)

// NoopAuditor is an auditor that does nothing.
type NoopAuditor struct{}

func NewNoopAuditor() *NoopAuditor {
	return &NoopAuditor{}
}

func (n *NoopAuditor) Log(core.AuditEntry) error {
	return nil
}

func (n *NoopAuditor) Close() error {
	return nil
}

const (
	TypeMemory = "memory"
	TypeFile   = "file"

	defaultMemoryEntries = 10_000
)

// New builds the auditor for the given type. Disabled auditing yields a NoopAuditor.
func New(enabled bool, auditType, path string) (core.Auditor, error) {
	if !enabled {
		return NewNoopAuditor(), nil
	}
	switch auditType {
	case TypeMemory, "":
		return NewInMemoryAuditor(defaultMemoryEntries), nil
	case TypeFile:
		if path == "" {
			return nil, fmt.Errorf("audit type 'file' requires a path")
		}
		fa, err := NewFileAuditor(path)
		if err != nil {
			return nil, err
		}
		return fa, nil
	default:
		return nil, fmt.Errorf("unknown audit type '%s'", auditType)
	}
}
