package policy

import (
	"testing"

	"github.com/darmiel/advisor/internal/core"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name    string
		row     core.PolicyRow
		want    core.CreditRule
		wantErr bool
	}{
		{
			name: "GreaterEqual Unicode",
			row:  core.PolicyRow{Condition: "CGPA ≥ 3.00", Max: 22},
			want: core.CreditRule{Kind: core.RuleGreaterEqual, Threshold: 3, Ceiling: 22},
		},
		{
			name: "GreaterEqual ASCII",
			row:  core.PolicyRow{Condition: "CGPA >= 3.5", Max: 24},
			want: core.CreditRule{Kind: core.RuleGreaterEqual, Threshold: 3.5, Ceiling: 24},
		},
		{
			name: "LessThan",
			row:  core.PolicyRow{Condition: "CGPA < 2.00", Max: 12},
			want: core.CreditRule{Kind: core.RuleLessThan, Threshold: 2, Ceiling: 12},
		},
		{
			name: "Range Unicode",
			row:  core.PolicyRow{Condition: "2.00 ≤ CGPA < 3.00", Max: 18},
			want: core.CreditRule{Kind: core.RuleRange, Lower: 2, Upper: 3, Ceiling: 18},
		},
		{
			name: "Range ASCII",
			row:  core.PolicyRow{Condition: "2.5 <= CGPA < 3", Max: 20},
			want: core.CreditRule{Kind: core.RuleRange, Lower: 2.5, Upper: 3, Ceiling: 20},
		},
		{
			name:    "Free Text",
			row:     core.PolicyRow{Condition: "Dean's approval required", Max: 30},
			wantErr: true,
		},
		{
			name:    "Threshold Without Number",
			row:     core.PolicyRow{Condition: "CGPA ≥ high", Max: 30},
			wantErr: true,
		},
		{
			name:    "Threshold With Two Numbers",
			row:     core.PolicyRow{Condition: "CGPA >= 3.0 or 3.5", Max: 30},
			wantErr: true,
		},
		{
			name:    "Range With One Number",
			row:     core.PolicyRow{Condition: "CGPA ≤ 2.0", Max: 10},
			wantErr: true,
		},
		{
			name:    "Range With One Number ASCII",
			row:     core.PolicyRow{Condition: "CGPA <= 2.00", Max: 10},
			wantErr: true,
		},
		{
			name:    "Inverted Range",
			row:     core.PolicyRow{Condition: "3.0 ≤ CGPA < 2.0", Max: 10},
			wantErr: true,
		},
		{
			name:    "Empty",
			row:     core.PolicyRow{Max: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.row)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRule() expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRule() unexpected error: %v", err)
			}
			if got.Kind != tt.want.Kind ||
				got.Threshold != tt.want.Threshold ||
				got.Lower != tt.want.Lower ||
				got.Upper != tt.want.Upper ||
				got.Ceiling != tt.want.Ceiling {
				t.Errorf("ParseRule() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRule_Expr(t *testing.T) {
	rule, err := ParseRule(core.PolicyRow{Expr: "cgpa >= 3.5 && cgpa <= 4", Condition: "ignored", Max: 24})
	if err != nil {
		t.Fatalf("ParseRule() unexpected error: %v", err)
	}
	if rule.Kind != core.RuleExpr || rule.Program == nil {
		t.Errorf("expected compiled expression rule, got %+v", rule)
	}

	if _, err := ParseRule(core.PolicyRow{Expr: "cgpa +", Max: 24}); err == nil {
		t.Errorf("expected compile error for broken expression")
	}
	if _, err := ParseRule(core.PolicyRow{Expr: "gpa > 3", Max: 24}); err == nil {
		t.Errorf("expected error for unknown variable")
	}
	if _, err := ParseRule(core.PolicyRow{Expr: "cgpa * 2", Max: 24}); err == nil {
		t.Errorf("expected error for non-boolean expression")
	}
}

func TestParse_FiltersCategoryAndKeepsOrder(t *testing.T) {
	rows := []core.PolicyRow{
		{Category: "Credit Limit", Condition: "CGPA ≥ 3.00", Max: 22},
		{Category: "Graduation", Condition: "CGPA ≥ 2.00", Max: 0},
		{Category: " Credit Limit ", Condition: "not a rule", Max: 99},
		{Category: "Credit Limit", Condition: "2.00 ≤ CGPA < 3.00", Max: 18},
		{Category: "Credit Limit", Condition: "CGPA < 2.00", Max: 12},
	}

	rules, dropped := Parse(rows)
	if len(rules) != 3 {
		t.Fatalf("Parse() got %d rules, want 3", len(rules))
	}
	want := []int{22, 18, 12}
	for i, r := range rules {
		if r.Ceiling != want[i] {
			t.Errorf("rule %d ceiling = %d, want %d", i, r.Ceiling, want[i])
		}
	}
	if len(dropped) != 1 || dropped[0].Index != 2 {
		t.Errorf("expected row 2 to be dropped, got %+v", dropped)
	}
}
