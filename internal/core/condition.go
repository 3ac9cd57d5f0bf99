package core

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr/vm"
)

// CreditLimitCategory is the policy category holding credit ceiling rules.
const CreditLimitCategory = "Credit Limit"

// DefaultCreditCeiling applies when no credit rule matches a CGPA.
const DefaultCreditCeiling = 12

// PolicyRow is a raw row of the institutional policy table.
type PolicyRow struct {
	// Category must equal CreditLimitCategory for the row to be considered.
	Category string `yaml:"category" json:"category"`

	// Condition is a free-text threshold or range, e.g. "CGPA ≥ 3.00" or "2.50 ≤ CGPA < 3.00".
	Condition string `yaml:"condition" json:"condition"`

	// Max is the credit ceiling granted when the condition matches.
	Max int `yaml:"max" json:"max"`

	// Expr is an optional boolean expression over `cgpa`, e.g. "cgpa >= 3.5 && cgpa <= 4".
	// If set, it takes precedence over Condition.
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// RuleKind is the predicate kind of a parsed credit rule.
type RuleKind string

const (
	// RuleGreaterEqual matches when cgpa >= Threshold.
	RuleGreaterEqual RuleKind = "greater_equal"
	// RuleLessThan matches when cgpa < Threshold.
	RuleLessThan RuleKind = "less_than"
	// RuleRange matches when Lower <= cgpa < Upper.
	RuleRange RuleKind = "range"
	// RuleExpr matches when the compiled expression evaluates to true.
	RuleExpr RuleKind = "expr"
)

func (k RuleKind) IsValid() bool {
	switch k {
	case RuleGreaterEqual, RuleLessThan, RuleRange, RuleExpr:
		return true
	default:
		return false
	}
}

// CreditRule is a typed credit ceiling predicate, parsed once from a PolicyRow.
type CreditRule struct {
	Kind      RuleKind `json:"kind"`
	Threshold float64  `json:"threshold,omitempty"`
	Lower     float64  `json:"lower,omitempty"`
	Upper     float64  `json:"upper,omitempty"`
	Ceiling   int      `json:"ceiling"`

	// Condition is the original text the rule was parsed from (or the expression for RuleExpr).
	Condition string `json:"condition"`

	// Program holds the compiled Condition for RuleExpr rules.
	Program *vm.Program `json:"-"`
}

// Expression renders the rule as a predicate over cgpa.
func (r CreditRule) Expression() string {
	switch r.Kind {
	case RuleGreaterEqual:
		return "cgpa >= " + formatFloat(r.Threshold)
	case RuleLessThan:
		return "cgpa < " + formatFloat(r.Threshold)
	case RuleRange:
		return formatFloat(r.Lower) + " <= cgpa < " + formatFloat(r.Upper)
	case RuleExpr:
		return r.Condition
	default:
		return fmt.Sprintf("<invalid rule kind '%s'>", r.Kind)
	}
}

func (r CreditRule) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("invalid rule kind '%s'", r.Kind)
	}
	if r.Ceiling < 0 {
		return fmt.Errorf("rule '%s' has negative ceiling %d", r.Expression(), r.Ceiling)
	}
	if r.Kind == RuleRange && r.Lower > r.Upper {
		return fmt.Errorf("rule '%s' has lower bound above upper bound", r.Expression())
	}
	if r.Kind == RuleExpr && r.Program == nil {
		return fmt.Errorf("expression rule '%s' is not compiled", r.Condition)
	}
	return nil
}

// CreditPolicy is an ordered list of credit rules. Order is significant: first match wins.
type CreditPolicy []CreditRule

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
