package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/policy"
	"github.com/darmiel/advisor/internal/validation"
)

// DefaultMaxCourses bounds the catalog size accepted by an Engine.
const DefaultMaxCourses = 10_000

// Engine runs the two-pass course selection. It holds no per-request state and
// can be shared between goroutines.
type Engine struct {
	maxCourses int
}

type Option func(*Engine)

// WithMaxCourses sets the largest catalog the engine accepts. Values <= 0 disable the bound.
func WithMaxCourses(n int) Option {
	return func(e *Engine) {
		e.maxCourses = n
	}
}

// New creates a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxCourses: DefaultMaxCourses,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend selects courses from the catalog for the given profile without exceeding ceiling.
func (e *Engine) Recommend(catalog []core.Course, ceiling int, profile core.StudentProfile) (*core.Recommendation, error) {
	if ceiling < 0 {
		return nil, core.DataError{
			Field: "ceiling",
			Value: ceiling,
			Err:   fmt.Errorf("credit ceiling must not be negative"),
		}
	}
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if err := validation.ValidateCatalog(catalog, e.maxCourses); err != nil {
		return nil, err
	}

	r := newRun(ceiling, profile)
	r.retakePass(catalog)
	r.generalPass(catalog)

	log.Debug().
		Int("ceiling", ceiling).
		Int("total_credits", r.result.TotalCredits).
		Int("courses", len(r.result.Courses)).
		Int("decisions", r.result.Explanations.Len()).
		Msg("recommendation computed")

	return r.result, nil
}

// Advise resolves the credit ceiling from the resolver and runs Recommend.
// The returned trace explains how the ceiling was chosen.
func (e *Engine) Advise(
	catalog []core.Course,
	resolver *policy.Resolver,
	profile core.StudentProfile,
) (*core.Recommendation, core.CeilingTrace, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, core.CeilingTrace{}, err
	}
	trace := resolver.Trace(profile.CGPA)
	rec, err := e.Recommend(catalog, trace.Ceiling, profile)
	if err != nil {
		return nil, trace, err
	}
	return rec, trace, nil
}

// Recommend parses the policy table and recommends courses using a default Engine.
func Recommend(catalog []core.Course, rows []core.PolicyRow, profile core.StudentProfile) (*core.Recommendation, error) {
	rec, _, err := New().Advise(catalog, policy.NewFromRows(rows), profile)
	return rec, err
}
