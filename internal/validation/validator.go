package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/darmiel/advisor/internal/core"
)

const (
	MinCGPA = 0.0
	MaxCGPA = 4.0
)

// ValidateProfile checks the student profile before it is used for a recommendation.
// Out of range values are rejected, never clamped.
func ValidateProfile(p core.StudentProfile) error {
	if math.IsNaN(p.CGPA) || p.CGPA < MinCGPA || p.CGPA > MaxCGPA {
		return core.InvalidProfileError{
			Field:  "cgpa",
			Reason: fmt.Sprintf("must be between %.1f and %.1f, got %v", MinCGPA, MaxCGPA, p.CGPA),
		}
	}
	if sem := core.ParseSemester(string(p.Semester)); !sem.IsTerm() {
		return core.InvalidProfileError{
			Field:  "semester",
			Reason: fmt.Sprintf("must be %s or %s, got '%s'", core.SemesterFall, core.SemesterSpring, p.Semester),
		}
	}
	return nil
}

// ValidateCatalog checks the structural invariants the engine relies on: unique, non-empty codes
// and credit hours within [0, core.MaxCreditHours]. It does not check that referenced prerequisite codes exist.
// maxCourses <= 0 disables the size bound.
func ValidateCatalog(catalog []core.Course, maxCourses int) error {
	if maxCourses > 0 && len(catalog) > maxCourses {
		return core.DataError{
			Field: "catalog",
			Value: len(catalog),
			Err:   fmt.Errorf("catalog exceeds the maximum of %d courses", maxCourses),
		}
	}

	seenCodes := make(map[string]struct{}, len(catalog))
	for i, course := range catalog {
		code := strings.TrimSpace(course.Code)
		if code == "" {
			return core.DataError{Row: i + 1, Field: "code", Err: fmt.Errorf("course code is empty")}
		}
		if _, exists := seenCodes[code]; exists {
			return core.DataError{Row: i + 1, Field: "code", Value: code, Err: fmt.Errorf("course code is not unique")}
		}
		seenCodes[code] = struct{}{}

		if course.CreditHours < 0 {
			return core.DataError{
				Row:   i + 1,
				Field: "credit_hours",
				Value: course.CreditHours,
				Err:   fmt.Errorf("credit hours of '%s' must not be negative", code),
			}
		}
		if course.CreditHours > core.MaxCreditHours {
			return core.DataError{
				Row:   i + 1,
				Field: "credit_hours",
				Value: course.CreditHours,
				Err:   fmt.Errorf("credit hours of '%s' must not exceed %d", code, core.MaxCreditHours),
			}
		}
	}
	return nil
}

// ValidatePolicy checks parsed credit rules.
func ValidatePolicy(rules core.CreditPolicy) error {
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("credit rule #%d: %w", i, err)
		}
	}
	return nil
}
