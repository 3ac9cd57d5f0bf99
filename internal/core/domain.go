package core

import "strings"

// Semester identifies the term a course is offered in or a student is enrolling for.
type Semester string

const (
	SemesterFall   Semester = "FALL"
	SemesterSpring Semester = "SPRING"
	// SemesterBoth is only valid for courses, students always enroll for a concrete semester.
	SemesterBoth Semester = "BOTH"
)

// ParseSemester normalizes a semester token (case-insensitive, surrounding whitespace ignored).
// Unknown tokens are returned upper-cased so they never match a known semester.
func ParseSemester(s string) Semester {
	return Semester(strings.ToUpper(strings.TrimSpace(s)))
}

// IsTerm reports whether s is a semester a student can enroll for.
func (s Semester) IsTerm() bool {
	return s == SemesterFall || s == SemesterSpring
}

// OfferedIn reports whether a course offered in s can be taken in term.
func (s Semester) OfferedIn(term Semester) bool {
	return s == SemesterBoth || (s.IsTerm() && s == term)
}

// MaxCreditHours is the largest credit value a single course may carry.
const MaxCreditHours = 100

// Course is a single catalog entry.
type Course struct {
	// Code is the unique identifier of the course within a catalog (e.g. "UC1").
	Code string `yaml:"code" json:"code"`

	// Name is the human-readable course name.
	Name string `yaml:"name" json:"name"`

	// Description is informational only, it does not influence recommendations.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// CreditHours must be non-negative.
	CreditHours int `yaml:"credit_hours" json:"credit_hours"`

	// Offered is FALL, SPRING or BOTH. Any other value never matches a term.
	Offered Semester `yaml:"semester_offered" json:"semester_offered"`

	// Prerequisites must all be passed before the course can be recommended.
	// Order is preserved for explanations.
	Prerequisites []string `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`

	// Corequisites must be passed or recommended earlier in the same run.
	Corequisites []string `yaml:"corequisites,omitempty" json:"corequisites,omitempty"`
}

// StudentProfile is the transcript state of a student for a single request.
type StudentProfile struct {
	CGPA     float64  `yaml:"cgpa" json:"cgpa"`
	Semester Semester `yaml:"semester" json:"semester"`
	Passed   []string `yaml:"passed" json:"passed"`
	Failed   []string `yaml:"failed" json:"failed"`
}
