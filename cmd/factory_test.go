package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/engine"
)

func TestLoadAdvisor_UsesConfiguredCatalogBound(t *testing.T) {
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString("Course Code,Course Name,Credit Hours,Semester Offered\n")
	for i := 0; i < engine.DefaultMaxCourses+5; i++ {
		fmt.Fprintf(&sb, "C%05d,Course %d,0,BOTH\n", i, i)
	}
	writeFile(t, filepath.Join(dir, "courses.csv"), sb.String())
	writeFile(t, filepath.Join(dir, "policies.csv"), "Category,Condition,max\nCredit Limit,CGPA ≥ 3.00,21\n")
	writeFile(t, filepath.Join(dir, "advisor.yaml"),
		"knowledge:\n  catalog: courses.csv\n  policies: policies.csv\n  max_courses: 20000\n")

	fac := &Factory{ConfigPath: filepath.Join(dir, "advisor.yaml")}
	base, eng, err := fac.LoadAdvisor(context.Background())
	if err != nil {
		t.Fatalf("LoadAdvisor() error: %v", err)
	}

	rec, _, err := eng.Advise(base.Catalog, base.Resolver, core.StudentProfile{CGPA: 3.5, Semester: core.SemesterFall})
	if err != nil {
		t.Fatalf("Advise() error: %v", err)
	}
	if len(rec.Courses) != engine.DefaultMaxCourses+5 {
		t.Errorf("recommended %d courses, want %d", len(rec.Courses), engine.DefaultMaxCourses+5)
	}
}

func TestProfileFlags_RequireCGPA(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    float64
	}{
		{"Missing", []string{"-s", "FALL"}, true, 0},
		{"Explicit Zero", []string{"--cgpa", "0", "-s", "FALL"}, false, 0},
		{"Set", []string{"--cgpa", "3.25", "-s", "FALL"}, false, 3.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pf profileFlags
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			pf.bind(flags)
			if err := flags.Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			profile, err := pf.payload().Profile()
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidProfile) {
					t.Fatalf("Profile() error = %v, want invalid profile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Profile() error: %v", err)
			}
			if profile.CGPA != tt.want {
				t.Errorf("CGPA = %v, want %v", profile.CGPA, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
