package knowledge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darmiel/advisor/internal/logging"
)

func newContentsServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/uni/tables/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "v1" {
			http.Error(w, `{"message":"unexpected ref"}`, http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
		content, ok := files[r.PathValue("path")]
		if !ok {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"type":     "file",
			"encoding": "base64",
			"path":     r.PathValue("path"),
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubSource_Fetch(t *testing.T) {
	srv := newContentsServer(t, map[string]string{
		"data/courses.csv":  testCourses,
		"data/policies.csv": testPolicies,
	})

	src, err := NewGitHubSource("uni", "tables", "v1", "data/courses.csv", "data/policies.csv", 100,
		WithGitHubToken("secret"),
		WithGitHubServer(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewGitHubSource() error: %v", err)
	}

	base, err := src.Fetch(context.Background(), logging.Nop{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(base.Catalog) != 2 || len(base.Resolver.Rules()) != 2 {
		t.Errorf("unexpected snapshot: %d courses, %d rules", len(base.Catalog), len(base.Resolver.Rules()))
	}
	if base.Source != "github:uni/tables@v1" {
		t.Errorf("Source = %q", base.Source)
	}

	// same content from disk yields the same version
	courses, policies := writeFixtures(t)
	local, err := NewFileSource(courses, policies, 100).Fetch(context.Background(), logging.Nop{})
	if err != nil {
		t.Fatal(err)
	}
	if local.Version != base.Version {
		t.Errorf("version mismatch: local %s, github %s", local.Version, base.Version)
	}
}

func TestGitHubSource_MissingFile(t *testing.T) {
	srv := newContentsServer(t, map[string]string{
		"data/courses.csv": testCourses,
	})
	src, err := NewGitHubSource("uni", "tables", "v1", "data/courses.csv", "data/policies.csv", 100,
		WithGitHubToken("secret"),
		WithGitHubServer(srv.URL+"/"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Fetch(context.Background(), logging.Nop{}); err == nil {
		t.Error("Fetch() expected error for missing policy table")
	}
}

func TestNewGitHubSource_Validation(t *testing.T) {
	if _, err := NewGitHubSource("", "repo", "", "a.csv", "b.csv", 0); err == nil {
		t.Error("expected error for missing owner")
	}
	src, err := NewGitHubSource("o", "r", "", "a.csv", "b.csv", 0)
	if err != nil {
		t.Fatal(err)
	}
	if src.Ref != "main" {
		t.Errorf("Ref = %q, want main", src.Ref)
	}
}
