package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/darmiel/advisor/internal/core"
)

func TestInMemoryAuditor_FindAndCap(t *testing.T) {
	a := NewInMemoryAuditor(3)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := a.Log(core.AuditEntry{ID: id, Success: id != "c"}); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := a.Find(nil, 0)
	if len(all) != 3 || all[0].ID != "b" {
		t.Errorf("expected oldest entry to be evicted, got %+v", all)
	}

	ok, _ := a.Find(func(e core.AuditEntry) bool { return e.Success }, 1)
	if len(ok) != 1 || ok[0].ID != "d" {
		t.Errorf("expected most recent successful entry, got %+v", ok)
	}
}

func TestFileAuditor_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	a, err := NewFileAuditor(path)
	if err != nil {
		t.Fatalf("NewFileAuditor() unexpected error: %v", err)
	}
	defer func() { _ = a.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	entries := []core.AuditEntry{
		{ID: "one", Time: now, Action: "recommend", Ceiling: 22, Courses: []string{"UC2"}, Success: true},
		{ID: "two", Time: now, Action: "recommend", Error: "invalid profile"},
	}
	for _, e := range entries {
		if err := a.Log(e); err != nil {
			t.Fatalf("Log() unexpected error: %v", err)
		}
	}

	got, err := a.Find(func(e core.AuditEntry) bool { return e.ID == "one" }, 10)
	if err != nil {
		t.Fatalf("Find() unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Ceiling != 22 || len(got[0].Courses) != 1 || !got[0].Time.Equal(now) {
		t.Errorf("Find() = %+v", got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		auditType string
		path      string
		wantErr   bool
	}{
		{"Disabled", false, "bogus", "", false},
		{"Memory", true, TypeMemory, "", false},
		{"File Without Path", true, TypeFile, "", true},
		{"File", true, TypeFile, filepath.Join(t.TempDir(), "a.log"), false},
		{"Unknown", true, "kafka", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.enabled, tt.auditType, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if a != nil {
				_ = a.Close()
			}
		})
	}
}

func TestProfileFingerprint(t *testing.T) {
	a := ProfileFingerprint(core.StudentProfile{CGPA: 3.1, Semester: "fall", Passed: []string{"UC1", "UC2"}})
	b := ProfileFingerprint(core.StudentProfile{CGPA: 3.1, Semester: core.SemesterFall, Passed: []string{" UC2", "UC1"}})
	c := ProfileFingerprint(core.StudentProfile{CGPA: 3.1, Semester: core.SemesterFall, Failed: []string{"UC1", "UC2"}})

	if a != b {
		t.Errorf("fingerprint must not depend on order or casing: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("passed and failed sets must be distinguished")
	}
}
