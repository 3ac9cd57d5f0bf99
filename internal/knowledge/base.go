package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/policy"
)

// Base is an immutable snapshot of the course catalog and policy table.
type Base struct {
	Catalog  []core.Course
	Policy   []core.PolicyRow
	Resolver *policy.Resolver

	// Version is a content hash of the catalog and policy, used in audit entries.
	Version  string
	Source   string
	LoadedAt time.Time
}

// NewBase parses the policy table once and fingerprints the snapshot.
func NewBase(catalog []core.Course, rows []core.PolicyRow, source string) *Base {
	return &Base{
		Catalog:  catalog,
		Policy:   rows,
		Resolver: policy.NewFromRows(rows),
		Version:  fingerprint(catalog, rows),
		Source:   source,
		LoadedAt: time.Now(),
	}
}

func fingerprint(catalog []core.Course, rows []core.PolicyRow) string {
	h := sha256.New()
	for _, c := range catalog {
		_, _ = fmt.Fprintf(h, "c|%s|%s|%d|%s|%v|%v\n",
			c.Code, c.Name, c.CreditHours, c.Offered, c.Prerequisites, c.Corequisites)
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(h, "p|%s|%s|%d|%s\n", r.Category, r.Condition, r.Max, r.Expr)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
