// Package catalog converts tabular course and policy records into validated core types.
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/advisor/internal/core"
)

// Column names of the course table, in the order they are written.
const (
	ColCode          = "Course Code"
	ColName          = "Course Name"
	ColDescription   = "Description"
	ColPrerequisites = "Prerequisites"
	ColCorequisites  = "Co-requisites"
	ColCreditHours   = "Credit Hours"
	ColOffered       = "Semester Offered"
)

// CourseColumns is the header of a course table.
var CourseColumns = []string{
	ColCode, ColName, ColDescription, ColPrerequisites, ColCorequisites, ColCreditHours, ColOffered,
}

// Column names of the policy table.
const (
	ColCategory  = "Category"
	ColCondition = "Condition"
	ColMax       = "max"
	ColExpr      = "expr"
)

// Record is a single loosely typed row, keyed by column name.
type Record map[string]any

// courseRecord is the decoded form of a course row. Keys are matched after normalizing,
// so "Course Code", "course_code" and "coursecode" are equivalent.
type courseRecord struct {
	Code          string `mapstructure:"coursecode"`
	Name          string `mapstructure:"coursename"`
	Description   string `mapstructure:"description"`
	Prerequisites any    `mapstructure:"prerequisites"`
	Corequisites  any    `mapstructure:"corequisites"`
	CreditHours   any    `mapstructure:"credithours"`
	Offered       string `mapstructure:"semesteroffered"`
}

type policyRecord struct {
	Category  string `mapstructure:"category"`
	Condition string `mapstructure:"condition"`
	Max       any    `mapstructure:"max"`
	Expr      string `mapstructure:"expr"`
}

// CourseFromRecord validates a course row. row is 1-based and only used for errors.
func CourseFromRecord(row int, rec Record) (core.Course, error) {
	var cr courseRecord
	if err := decode(rec, &cr); err != nil {
		return core.Course{}, core.DataError{Row: row, Field: "record", Err: err}
	}

	code := strings.TrimSpace(cr.Code)
	if code == "" {
		return core.Course{}, core.DataError{Row: row, Field: ColCode, Err: fmt.Errorf("missing course code")}
	}

	credits, err := toInt(cr.CreditHours)
	if err != nil {
		return core.Course{}, core.DataError{Row: row, Field: ColCreditHours, Value: cr.CreditHours, Err: err}
	}
	if credits < 0 {
		return core.Course{}, core.DataError{Row: row, Field: ColCreditHours, Value: credits, Err: fmt.Errorf("must not be negative")}
	}
	if credits > core.MaxCreditHours {
		return core.Course{}, core.DataError{
			Row:   row,
			Field: ColCreditHours,
			Value: credits,
			Err:   fmt.Errorf("must not exceed %d", core.MaxCreditHours),
		}
	}

	prereqs, err := toCodes(cr.Prerequisites)
	if err != nil {
		return core.Course{}, core.DataError{Row: row, Field: ColPrerequisites, Value: cr.Prerequisites, Err: err}
	}
	coreqs, err := toCodes(cr.Corequisites)
	if err != nil {
		return core.Course{}, core.DataError{Row: row, Field: ColCorequisites, Value: cr.Corequisites, Err: err}
	}

	return core.Course{
		Code:          code,
		Name:          strings.TrimSpace(cr.Name),
		Description:   strings.TrimSpace(cr.Description),
		CreditHours:   credits,
		Offered:       core.ParseSemester(cr.Offered),
		Prerequisites: prereqs,
		Corequisites:  coreqs,
	}, nil
}

// PolicyFromRecord validates a policy row. The max column is only required for credit limit rows.
func PolicyFromRecord(row int, rec Record) (core.PolicyRow, error) {
	var pr policyRecord
	if err := decode(rec, &pr); err != nil {
		return core.PolicyRow{}, core.DataError{Row: row, Field: "record", Err: err}
	}

	out := core.PolicyRow{
		Category:  strings.TrimSpace(pr.Category),
		Condition: strings.TrimSpace(pr.Condition),
		Expr:      strings.TrimSpace(pr.Expr),
	}
	if out.Category != core.CreditLimitCategory {
		// other categories are informational, their max is kept when it happens to be numeric
		out.Max, _ = toInt(pr.Max)
		return out, nil
	}

	ceiling, err := toInt(pr.Max)
	if err != nil {
		return core.PolicyRow{}, core.DataError{Row: row, Field: ColMax, Value: pr.Max, Err: err}
	}
	out.Max = ceiling
	return out, nil
}

// CourseToRecord is the inverse of CourseFromRecord, used when writing tables.
func CourseToRecord(c core.Course) []string {
	return []string{
		c.Code,
		c.Name,
		c.Description,
		strings.Join(c.Prerequisites, ", "),
		strings.Join(c.Corequisites, ", "),
		strconv.Itoa(c.CreditHours),
		string(c.Offered),
	}
}

func decode(rec Record, out any) error {
	normalized := make(map[string]any, len(rec))
	for k, v := range rec {
		normalized[normalizeKey(k)] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(normalized)
}

func normalizeKey(k string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(k)))
}

// toInt accepts integers, integral floats and numeric strings.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing value")
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("'%d' is out of range", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("'%v' is not a whole number", n)
		}
		if n >= math.MaxInt64 || n <= math.MinInt64 {
			return 0, fmt.Errorf("'%v' is out of range", n)
		}
		return int(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, fmt.Errorf("missing value")
		}
		i, err := strconv.Atoi(s)
		if err == nil {
			return i, nil
		}
		// spreadsheets tend to export "3.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("'%s' is not a number", s)
		}
		return toInt(f)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// toCodes accepts a comma-separated string or a list of codes.
func toCodes(v any) ([]string, error) {
	var parts []string
	switch l := v.(type) {
	case nil:
		return nil, nil
	case string:
		parts = strings.Split(l, ",")
	case []string:
		parts = l
	case []any:
		for _, item := range l {
			parts = append(parts, fmt.Sprint(item))
		}
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}

	var codes []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codes = append(codes, p)
		}
	}
	return codes, nil
}
