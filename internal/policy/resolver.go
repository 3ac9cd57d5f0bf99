package policy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/advisor/internal/core"
)

// Resolver resolves the credit ceiling for a CGPA from an ordered credit policy.
type Resolver struct {
	rules core.CreditPolicy
}

// New creates a Resolver from already parsed rules.
func New(rules core.CreditPolicy) *Resolver {
	return &Resolver{
		rules: rules,
	}
}

// NewFromRows parses the policy table and creates a Resolver.
// Rows that cannot be classified are dropped.
func NewFromRows(rows []core.PolicyRow) *Resolver {
	rules, dropped := Parse(rows)
	for _, d := range dropped {
		log.Debug().
			Int("row", d.Index).
			Str("condition", d.Row.Condition).
			Str("expr", d.Row.Expr).
			Err(d.Err).
			Msg("dropping unclassifiable credit limit rule")
	}
	return New(rules)
}

// Rules returns the parsed rules in table order.
func (r *Resolver) Rules() core.CreditPolicy {
	cpy := make(core.CreditPolicy, len(r.rules))
	copy(cpy, r.rules)
	return cpy
}

// Resolve returns the ceiling of the first matching rule, or core.DefaultCreditCeiling.
func (r *Resolver) Resolve(cgpa float64) int {
	for _, rule := range r.rules {
		if ok, _ := matches(rule, cgpa); ok {
			return rule.Ceiling
		}
	}
	return core.DefaultCreditCeiling
}

// Trace resolves the ceiling and records every rule evaluated up to the first match.
func (r *Resolver) Trace(cgpa float64) core.CeilingTrace {
	trace := core.CeilingTrace{
		CGPA:        cgpa,
		RuleResults: make([]core.RuleResult, 0, len(r.rules)),
		MatchedRule: -1,
	}
	for i, rule := range r.rules {
		ok, reason := matches(rule, cgpa)
		trace.RuleResults = append(trace.RuleResults, core.RuleResult{
			Index:      i,
			Expression: rule.Expression(),
			Ceiling:    rule.Ceiling,
			Matched:    ok,
			Reason:     reason,
		})
		if ok {
			trace.Ceiling = rule.Ceiling
			trace.MatchedRule = i
			return trace
		}
	}
	trace.Ceiling = core.DefaultCreditCeiling
	trace.Default = true
	return trace
}

func matches(rule core.CreditRule, cgpa float64) (bool, string) {
	switch rule.Kind {
	case core.RuleGreaterEqual:
		if cgpa >= rule.Threshold {
			return true, ""
		}
		return false, fmt.Sprintf("%v is below %v", cgpa, rule.Threshold)

	case core.RuleLessThan:
		if cgpa < rule.Threshold {
			return true, ""
		}
		return false, fmt.Sprintf("%v is not below %v", cgpa, rule.Threshold)

	case core.RuleRange:
		if cgpa < rule.Lower {
			return false, fmt.Sprintf("%v is below lower bound %v", cgpa, rule.Lower)
		}
		if cgpa >= rule.Upper {
			return false, fmt.Sprintf("%v is not below upper bound %v", cgpa, rule.Upper)
		}
		return true, ""

	case core.RuleExpr:
		if rule.Program == nil {
			return false, "expression is not compiled"
		}
		out, err := expr.Run(rule.Program, map[string]any{"cgpa": cgpa})
		if err != nil {
			log.Warn().Err(err).Str("expr", rule.Condition).Msg("error evaluating credit rule expression")
			return false, fmt.Sprintf("error evaluating expression: %v", err)
		}
		if b, ok := out.(bool); ok && b {
			return true, ""
		}
		return false, "expression evaluated to false"
	}

	return false, fmt.Sprintf("unknown rule kind '%s'", rule.Kind)
}
