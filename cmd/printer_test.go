package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/engine"
)

func init() {
	color.NoColor = true
}

func TestPrintRecommendation_Empty(t *testing.T) {
	var buf bytes.Buffer
	printRecommendation(&buf, &core.Recommendation{Ceiling: 12, Courses: []core.RecommendedCourse{}})
	if got := strings.TrimSpace(buf.String()); got != noRecommendations {
		t.Errorf("output = %q, want %q", got, noRecommendations)
	}
}

func TestPrintRecommendation_TableAndExplanations(t *testing.T) {
	var log core.ExplanationLog
	log.Append(core.Explanation{Pass: core.PassGeneral, Code: "CS101", Reason: core.ReasonEligible,
		Message: "CS101 is recommended because it has no prerequisites."})
	log.Append(core.Explanation{Pass: core.PassGeneral, Code: "CS201", Reason: core.ReasonPrerequisites,
		Message: "CS201 is not recommended due to unmet prerequisite(s): CS102, MATH101."})

	var buf bytes.Buffer
	printRecommendation(&buf, &core.Recommendation{
		Courses:      []core.RecommendedCourse{{Code: "CS101", Name: "Introduction to Programming", CreditHours: 3}},
		TotalCredits: 3,
		Ceiling:      18,
		Explanations: log,
	})

	out := buf.String()
	for _, want := range []string{
		"CS101",
		"Introduction to Programming",
		"3 / 18",
		"Explanation of Decisions",
		"• CS201 is not recommended due to unmet prerequisite(s): CS102, MATH101.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Explanation of Decisions") < strings.Index(out, "CS101") {
		t.Error("explanations must follow the course table")
	}
}

func TestLoadKnowledge_TestdataConfig(t *testing.T) {
	fac := &Factory{ConfigPath: "../testdata/advisor.yaml"}
	base, err := fac.LoadKnowledge(context.Background())
	if err != nil {
		t.Fatalf("LoadKnowledge() error: %v", err)
	}
	if len(base.Catalog) != 6 || len(base.Resolver.Rules()) != 3 {
		t.Fatalf("unexpected snapshot: %d courses, %d rules", len(base.Catalog), len(base.Resolver.Rules()))
	}

	rec, ceiling, err := engine.New().Advise(base.Catalog, base.Resolver, core.StudentProfile{
		CGPA:     2.4,
		Semester: core.SemesterFall,
		Passed:   []string{"CS101", "CS102", "MATH101"},
		Failed:   []string{"CS101L"},
	})
	if err != nil {
		t.Fatalf("Advise() error: %v", err)
	}
	if ceiling.Ceiling != 18 || ceiling.MatchedRule != 1 {
		t.Errorf("unexpected ceiling trace: %+v", ceiling)
	}

	var buf bytes.Buffer
	printTrace(&buf, &core.EvaluationTrace{
		Profile:        core.StudentProfile{CGPA: 2.4, Semester: core.SemesterFall},
		Ceiling:        ceiling,
		Recommendation: rec,
		Decisions:      rec.Explanations.Entries(),
	}, "")
	out := buf.String()
	for _, want := range []string{
		"2 <= cgpa < 3",
		"Pass 1: retakes",
		"CS101L is prioritized because you failed it previously and met its prerequisites.",
		"CS202 is not offered in the FALL semester.",
		"CS201 is recommended because you passed CS102, MATH101, its prerequisite(s).",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestLoadKnowledge_NoTables(t *testing.T) {
	if _, err := (&Factory{}).LoadKnowledge(context.Background()); err == nil {
		t.Error("expected error without tables")
	}
}
