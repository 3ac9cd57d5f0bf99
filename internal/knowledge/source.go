package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/logging"
	"github.com/darmiel/advisor/internal/validation"
)

// Source loads a knowledge base snapshot.
type Source interface {
	Fetch(ctx context.Context, log logging.InternalLogger) (*Base, error)
}

// FileSource reads the catalog and policy tables from local files (CSV or YAML).
type FileSource struct {
	CatalogPath string
	PolicyPath  string
	MaxCourses  int
}

var _ Source = (*FileSource)(nil)

func NewFileSource(catalogPath, policyPath string, maxCourses int) *FileSource {
	return &FileSource{
		CatalogPath: catalogPath,
		PolicyPath:  policyPath,
		MaxCourses:  maxCourses,
	}
}

func (s *FileSource) Fetch(ctx context.Context, log logging.InternalLogger) (*Base, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("loading course catalog from '%s'", s.CatalogPath)
	courses, err := catalog.LoadCourses(s.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCatalog(courses, s.MaxCourses); err != nil {
		return nil, fmt.Errorf("validating catalog '%s': %w", s.CatalogPath, err)
	}

	log.Info("loading policy table from '%s'", s.PolicyPath)
	rows, err := catalog.LoadPolicies(s.PolicyPath)
	if err != nil {
		return nil, err
	}

	return buildBase(log, courses, rows, s.CatalogPath+" + "+s.PolicyPath)
}

// buildBase parses the policy rows of a freshly loaded snapshot and reports dropped rows.
func buildBase(log logging.InternalLogger, courses []core.Course, rows []core.PolicyRow, source string) (*Base, error) {
	base := NewBase(courses, rows, source)
	if err := validation.ValidatePolicy(base.Resolver.Rules()); err != nil {
		return nil, fmt.Errorf("validating policy: %w", err)
	}
	if dropped := countCreditRows(rows) - len(base.Resolver.Rules()); dropped > 0 {
		log.Warn("%d credit limit row(s) could not be classified and were dropped", dropped)
	}

	log.Info("loaded %d course(s) and %d credit rule(s), version %s",
		len(courses), len(base.Resolver.Rules()), base.Version)
	return base, nil
}

// Paths returns the files backing this source.
func (s *FileSource) Paths() []string {
	return []string{s.CatalogPath, s.PolicyPath}
}

func countCreditRows(rows []core.PolicyRow) int {
	n := 0
	for _, r := range rows {
		if strings.TrimSpace(r.Category) == core.CreditLimitCategory {
			n++
		}
	}
	return n
}
