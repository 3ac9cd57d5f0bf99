package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/policy"
)

func course(code string, credits int, offered core.Semester, prereqs ...string) core.Course {
	return core.Course{
		Code:          code,
		Name:          "Course " + code,
		CreditHours:   credits,
		Offered:       offered,
		Prerequisites: prereqs,
	}
}

func codes(rec *core.Recommendation) []string {
	out := make([]string, 0, len(rec.Courses))
	for _, c := range rec.Courses {
		out = append(out, c.Code)
	}
	return out
}

func TestRecommend_PassedPrerequisiteAndUnmetPrerequisite(t *testing.T) {
	rows := []core.PolicyRow{
		{Category: "Credit Limit", Condition: "CGPA ≥ 3.00", Max: 22},
	}
	catalog := []core.Course{
		course("UC1", 3, core.SemesterFall),
		course("UC2", 3, core.SemesterFall, "UC1"),
		course("UC3", 3, core.SemesterFall, "UC4"),
	}
	profile := core.StudentProfile{
		CGPA:     3.1,
		Semester: core.SemesterFall,
		Passed:   []string{"UC1"},
	}

	rec, err := Recommend(catalog, rows, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	if rec.Ceiling != 22 {
		t.Errorf("Ceiling = %d, want 22", rec.Ceiling)
	}
	if diff := cmp.Diff([]string{"UC2"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
	if rec.TotalCredits != 3 {
		t.Errorf("TotalCredits = %d, want 3", rec.TotalCredits)
	}

	wantLog := []string{
		"UC2 is recommended because you passed UC1, its prerequisite(s).",
		"UC3 is not recommended due to unmet prerequisite(s): UC4.",
	}
	if diff := cmp.Diff(wantLog, rec.Explanations.Messages()); diff != "" {
		t.Errorf("explanations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_FailedCourseNotReconsidered(t *testing.T) {
	catalog := []core.Course{
		course("UC5", 3, core.SemesterBoth, "UC1"),
		course("UC6", 3, core.SemesterBoth),
	}
	profile := core.StudentProfile{
		CGPA:     2.5,
		Semester: core.SemesterSpring,
		Failed:   []string{"UC5"},
	}

	rec, err := New().Recommend(catalog, 18, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"UC6"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}

	wantLog := []core.Explanation{
		{Pass: core.PassRetake, Code: "UC5", Reason: core.ReasonPrerequisites,
			Message: "UC5 is not recommended due to unmet prerequisite(s): UC1."},
		{Pass: core.PassGeneral, Code: "UC5", Reason: core.ReasonPrerequisites,
			Message: "UC5 is not recommended due to unmet prerequisite(s): UC1."},
		{Pass: core.PassGeneral, Code: "UC6", Reason: core.ReasonEligible,
			Message: "UC6 is recommended because it has no prerequisites."},
	}
	if diff := cmp.Diff(wantLog, rec.Explanations.Entries()); diff != "" {
		t.Errorf("explanations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_CorequisiteAddedEarlierInPass(t *testing.T) {
	lab := course("LAB1", 1, core.SemesterFall)
	lab.Corequisites = []string{"PHY1"}
	catalog := []core.Course{
		course("PHY1", 3, core.SemesterFall),
		lab,
	}
	profile := core.StudentProfile{CGPA: 3.0, Semester: core.SemesterFall}

	rec, err := New().Recommend(catalog, 12, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"PHY1", "LAB1"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_CorequisiteForwardSweepOnly(t *testing.T) {
	// the co-requisite appears later in the catalog, so it is not yet added when LAB1 is checked
	lab := course("LAB1", 1, core.SemesterFall)
	lab.Corequisites = []string{"PHY1", "PASSED1"}
	catalog := []core.Course{
		lab,
		course("PHY1", 3, core.SemesterFall),
	}
	profile := core.StudentProfile{CGPA: 3.0, Semester: core.SemesterFall, Passed: []string{"PASSED1"}}

	rec, err := New().Recommend(catalog, 12, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"PHY1"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
	want := "LAB1 is not recommended due to unmet co-requisite(s): PHY1."
	if got := rec.Explanations.Messages()[0]; got != want {
		t.Errorf("first explanation = %q, want %q", got, want)
	}
}

func TestRecommend_CorequisiteSatisfiedByRetake(t *testing.T) {
	lab := course("LAB1", 1, core.SemesterFall)
	lab.Corequisites = []string{"PHY1"}
	catalog := []core.Course{
		lab,
		course("PHY1", 3, core.SemesterFall),
	}
	profile := core.StudentProfile{CGPA: 3.0, Semester: core.SemesterFall, Failed: []string{"PHY1"}}

	rec, err := New().Recommend(catalog, 12, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"PHY1", "LAB1"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_RetakeSkipReasons(t *testing.T) {
	catalog := []core.Course{
		course("F1", 3, core.SemesterFall),
		course("F2", 3, core.SemesterSpring),
		course("F3", 4, core.SemesterFall),
		course("F4", 3, core.SemesterFall),
	}
	profile := core.StudentProfile{
		CGPA:     2.0,
		Semester: core.SemesterFall,
		Passed:   []string{"F1"},
		Failed:   []string{"F1", "F2", "F3", "F4"},
	}

	rec, err := New().Recommend(catalog, 6, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	wantLog := []string{
		"F1 is not recommended because it was already passed.",
		"F2 is unavailable this semester.",
		"F3 is prioritized because you failed it previously and met its prerequisites.",
		"F4 is not added because it would exceed the credit limit.",
		"F2 is not offered in the FALL semester.",
		"F4 is not added because it would exceed the credit limit.",
	}
	if diff := cmp.Diff(wantLog, rec.Explanations.Messages()); diff != "" {
		t.Errorf("explanations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"F3"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_GeneralSkipPrecedence(t *testing.T) {
	// not offered wins over unmet prerequisites, prerequisites over co-requisites,
	// co-requisites over the credit limit
	c1 := course("C1", 30, core.SemesterSpring, "X")
	c1.Corequisites = []string{"Y"}
	c2 := course("C2", 30, core.SemesterFall, "X")
	c2.Corequisites = []string{"Y"}
	c3 := course("C3", 30, core.SemesterFall)
	c3.Corequisites = []string{"Y"}
	c4 := course("C4", 30, core.SemesterFall)

	rec, err := New().Recommend([]core.Course{c1, c2, c3, c4}, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	var got []core.Reason
	for _, e := range rec.Explanations.Entries() {
		got = append(got, e.Reason)
	}
	want := []core.Reason{
		core.ReasonNotOffered,
		core.ReasonPrerequisites,
		core.ReasonCorequisites,
		core.ReasonCreditLimit,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reasons mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_CeilingBoundary(t *testing.T) {
	tests := []struct {
		name    string
		credits int
		want    bool
	}{
		{"Exactly Ceiling", 4, true},
		{"Ceiling Plus One", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := []core.Course{
				course("A", 8, core.SemesterFall),
				course("B", tt.credits, core.SemesterFall),
			}
			rec, err := New().Recommend(catalog, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
			if err != nil {
				t.Fatalf("Recommend() unexpected error: %v", err)
			}
			included := len(rec.Courses) == 2
			if included != tt.want {
				t.Errorf("B included = %v, want %v (total %d)", included, tt.want, rec.TotalCredits)
			}
			if rec.TotalCredits > rec.Ceiling {
				t.Errorf("TotalCredits %d exceeds ceiling %d", rec.TotalCredits, rec.Ceiling)
			}
		})
	}
}

func TestRecommend_HugeCreditsDoNotWrapTotal(t *testing.T) {
	input := "Course Code,Course Name,Credit Hours,Semester Offered\n" +
		"A,A,3,BOTH\n" +
		"B,B,9223372036854775807,BOTH\n" +
		"C,C,10,BOTH\n" +
		"D,D,10,BOTH\n"
	if _, err := catalog.ReadCourses(strings.NewReader(input), catalog.FormatCSV); !errors.Is(err, core.ErrDataError) {
		t.Fatalf("ReadCourses() error = %v, want data error", err)
	}

	// catalogs built in code skip ingestion and must still be bounded
	courses := []core.Course{
		course("A", 3, core.SemesterBoth),
		course("B", math.MaxInt, core.SemesterBoth),
		course("C", 10, core.SemesterBoth),
	}
	profile := core.StudentProfile{CGPA: 3, Semester: core.SemesterFall}
	if _, err := New().Recommend(courses, 12, profile); !errors.Is(err, core.ErrDataError) {
		t.Fatalf("Recommend() error = %v, want data error", err)
	}
}

func TestRecommend_FitsNearIntLimit(t *testing.T) {
	courses := []core.Course{
		course("A", 3, core.SemesterBoth),
		course("B", core.MaxCreditHours, core.SemesterBoth),
	}
	rec, err := New().Recommend(courses, math.MaxInt, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, codes(rec)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}

	rec, err = New().Recommend(courses, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if rec.TotalCredits != 3 || rec.TotalCredits > rec.Ceiling {
		t.Errorf("TotalCredits = %d, want 3 within ceiling %d", rec.TotalCredits, rec.Ceiling)
	}
}

func TestRecommend_NegativeCeiling(t *testing.T) {
	courses := []core.Course{course("A", 0, core.SemesterBoth)}
	_, err := New().Recommend(courses, -1, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	var de core.DataError
	if !errors.As(err, &de) || de.Field != "ceiling" {
		t.Fatalf("Recommend() error = %v, want ceiling data error", err)
	}
}

func TestRecommend_RetakePriority(t *testing.T) {
	catalog := []core.Course{
		course("NEW1", 3, core.SemesterFall),
		course("NEW2", 3, core.SemesterFall),
		course("OLD1", 3, core.SemesterFall),
	}
	profile := core.StudentProfile{CGPA: 2, Semester: core.SemesterFall, Failed: []string{"OLD1"}}

	rec, err := New().Recommend(catalog, 6, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	// the retake comes first and takes capacity ahead of catalog order
	if diff := cmp.Diff([]string{"OLD1", "NEW1"}, codes(rec)); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_PassedNeverRecommended(t *testing.T) {
	catalog := []core.Course{
		course("UC1", 3, core.SemesterBoth),
		course("UC2", 3, core.SemesterBoth),
	}
	profile := core.StudentProfile{
		CGPA:     4,
		Semester: core.SemesterSpring,
		Passed:   []string{"UC1", "UC2"},
		Failed:   []string{"UC2"},
	}

	rec, err := New().Recommend(catalog, 30, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if len(rec.Courses) != 0 {
		t.Errorf("expected no courses, got %v", codes(rec))
	}
	// only the retake pass logs the passed override, the general pass skips silently
	want := []string{"UC2 is not recommended because it was already passed."}
	if diff := cmp.Diff(want, rec.Explanations.Messages()); diff != "" {
		t.Errorf("explanations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommend_NoEligibleCourses(t *testing.T) {
	catalog := []core.Course{course("S1", 3, core.SemesterSpring)}
	rec, err := New().Recommend(catalog, 12, core.StudentProfile{CGPA: 1, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if rec.Courses == nil || len(rec.Courses) != 0 {
		t.Errorf("expected empty, non-nil course list, got %#v", rec.Courses)
	}
	if rec.Ceiling != 12 || rec.Explanations.Len() != 1 {
		t.Errorf("unexpected result %+v", rec)
	}
}

func TestRecommend_UnknownSemesterToken(t *testing.T) {
	catalog := []core.Course{course("S1", 3, "SUMMER")}
	rec, err := New().Recommend(catalog, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	if len(rec.Courses) != 0 {
		t.Errorf("course with unknown semester must not be recommended")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	catalog := []core.Course{
		course("A", 3, core.SemesterFall),
		course("B", 3, core.SemesterFall, "A"),
		course("C", 4, core.SemesterBoth),
		course("D", 3, core.SemesterSpring),
	}
	profile := core.StudentProfile{CGPA: 3.3, Semester: core.SemesterFall, Passed: []string{"A"}, Failed: []string{"C"}}

	eng := New()
	first, err := eng.Recommend(catalog, 7, profile)
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := eng.Recommend(catalog, 7, profile)
		if err != nil {
			t.Fatalf("Recommend() unexpected error: %v", err)
		}
		if diff := cmp.Diff(first.Courses, again.Courses); diff != "" {
			t.Fatalf("run %d courses differ:\n%s", i, diff)
		}
		if diff := cmp.Diff(first.Explanations.Entries(), again.Explanations.Entries()); diff != "" {
			t.Fatalf("run %d explanations differ:\n%s", i, diff)
		}
	}
}

func TestRecommend_NoCrossCallState(t *testing.T) {
	catalog := []core.Course{
		course("A", 3, core.SemesterFall),
		course("B", 3, core.SemesterFall, "A"),
	}
	eng := New()

	withA, err := eng.Recommend(catalog, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall, Passed: []string{"A"}})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}
	fresh, err := eng.Recommend(catalog, 12, core.StudentProfile{CGPA: 3, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"B"}, codes(withA)); diff != "" {
		t.Errorf("first call mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A"}, codes(fresh)); diff != "" {
		t.Errorf("second call mismatch:\n%s", diff)
	}
}

func TestRecommend_Errors(t *testing.T) {
	valid := core.StudentProfile{CGPA: 3, Semester: core.SemesterFall}

	tests := []struct {
		name    string
		engine  *Engine
		catalog []core.Course
		profile core.StudentProfile
		target  error
	}{
		{"CGPA Too High", New(), nil, core.StudentProfile{CGPA: 4.5, Semester: core.SemesterFall}, core.ErrInvalidProfile},
		{"Bad Semester", New(), nil, core.StudentProfile{CGPA: 3, Semester: "WINTER"}, core.ErrInvalidProfile},
		{"Negative Credits", New(), []core.Course{course("A", -1, core.SemesterFall)}, valid, core.ErrDataError},
		{"Catalog Too Large", New(WithMaxCourses(1)), []core.Course{
			course("A", 1, core.SemesterFall), course("B", 1, core.SemesterFall),
		}, valid, core.ErrDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Recommend(tt.catalog, 12, tt.profile)
			if !errors.Is(err, tt.target) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestAdvise_Trace(t *testing.T) {
	resolver := policy.NewFromRows([]core.PolicyRow{
		{Category: "Credit Limit", Condition: "CGPA ≥ 3.00", Max: 22},
		{Category: "Credit Limit", Condition: "CGPA < 3.00", Max: 15},
	})
	rec, trace, err := New().Advise(nil, resolver, core.StudentProfile{CGPA: 2.1, Semester: core.SemesterSpring})
	if err != nil {
		t.Fatalf("Advise() unexpected error: %v", err)
	}
	if rec.Ceiling != 15 || trace.MatchedRule != 1 {
		t.Errorf("Advise() ceiling = %d via rule %d, want 15 via rule 1", rec.Ceiling, trace.MatchedRule)
	}
}
