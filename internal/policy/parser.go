package policy

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/darmiel/advisor/internal/core"
)

// ErrUnclassified is returned for conditions that are none of the supported forms.
var ErrUnclassified = errors.New("condition is not a threshold or range")

var literalPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

// exprEnv is the environment policy expressions are type-checked against.
var exprEnv = map[string]any{
	"cgpa": 0.0,
}

// Dropped is a policy row that did not produce a rule.
type Dropped struct {
	Index int
	Row   core.PolicyRow
	Err   error
}

// Parse converts the credit limit rows of a policy table into typed rules, keeping table order.
// Rows of other categories are ignored, rows that cannot be classified are returned as dropped.
func Parse(rows []core.PolicyRow) (core.CreditPolicy, []Dropped) {
	var (
		rules   core.CreditPolicy
		dropped []Dropped
	)
	for i, row := range rows {
		if strings.TrimSpace(row.Category) != core.CreditLimitCategory {
			continue
		}
		rule, err := ParseRule(row)
		if err != nil {
			dropped = append(dropped, Dropped{Index: i, Row: row, Err: err})
			continue
		}
		rules = append(rules, rule)
	}
	return rules, dropped
}

// ParseRule classifies a single policy row.
func ParseRule(row core.PolicyRow) (core.CreditRule, error) {
	if strings.TrimSpace(row.Expr) != "" {
		return parseExpr(row)
	}

	cond := strings.TrimSpace(row.Condition)
	literals, err := extractLiterals(cond)
	if err != nil {
		return core.CreditRule{}, err
	}

	rule := core.CreditRule{
		Ceiling:   row.Max,
		Condition: cond,
	}

	switch {
	case strings.Contains(cond, "≥") || strings.Contains(cond, ">="):
		if len(literals) != 1 {
			return core.CreditRule{}, fmt.Errorf("threshold '%s' needs exactly one number, got %d", cond, len(literals))
		}
		rule.Kind = core.RuleGreaterEqual
		rule.Threshold = literals[0]
	// "<=" is an alias of "≤" and never falls through to LessThan
	case strings.Contains(cond, "≤") || strings.Contains(cond, "<="):
		if len(literals) != 2 {
			return core.CreditRule{}, fmt.Errorf("range '%s' needs exactly two numbers, got %d", cond, len(literals))
		}
		rule.Kind = core.RuleRange
		rule.Lower, rule.Upper = literals[0], literals[1]
	case strings.Contains(cond, "<"):
		if len(literals) != 1 {
			return core.CreditRule{}, fmt.Errorf("threshold '%s' needs exactly one number, got %d", cond, len(literals))
		}
		rule.Kind = core.RuleLessThan
		rule.Threshold = literals[0]
	default:
		return core.CreditRule{}, fmt.Errorf("%w: '%s'", ErrUnclassified, cond)
	}

	if err := rule.Validate(); err != nil {
		return core.CreditRule{}, err
	}
	return rule, nil
}

func parseExpr(row core.PolicyRow) (core.CreditRule, error) {
	code := strings.TrimSpace(row.Expr)
	program, err := expr.Compile(code, expr.Env(exprEnv), expr.AsBool())
	if err != nil {
		return core.CreditRule{}, fmt.Errorf("compiling expr '%s': %w", code, err)
	}
	rule := core.CreditRule{
		Kind:      core.RuleExpr,
		Ceiling:   row.Max,
		Condition: code,
		Program:   program,
	}
	if err := rule.Validate(); err != nil {
		return core.CreditRule{}, err
	}
	return rule, nil
}

func extractLiterals(cond string) ([]float64, error) {
	matches := literalPattern.FindAllString(cond, -1)
	literals := make([]float64, 0, len(matches))
	for _, m := range matches {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing number '%s' in condition '%s': %w", m, cond, err)
		}
		literals = append(literals, f)
	}
	return literals, nil
}
