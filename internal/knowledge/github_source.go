package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v80/github"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/logging"
	"github.com/darmiel/advisor/internal/validation"
)

// GitHubSource reads the catalog and policy tables from a GitHub repository.
type GitHubSource struct {
	Owner string
	Repo  string
	Ref   string

	CatalogPath string
	PolicyPath  string
	MaxCourses  int

	client *github.Client
}

var _ Source = (*GitHubSource)(nil)

type GitHubOption func(*GitHubSource) error

// WithGitHubToken authenticates requests, required for private repositories.
func WithGitHubToken(token string) GitHubOption {
	return func(s *GitHubSource) error {
		if token != "" {
			s.client = s.client.WithAuthToken(token)
		}
		return nil
	}
}

// WithGitHubServer targets a GitHub Enterprise server instead of github.com.
func WithGitHubServer(serverURL string) GitHubOption {
	return func(s *GitHubSource) error {
		if serverURL == "" {
			return nil
		}
		c, err := s.client.WithEnterpriseURLs(serverURL, serverURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub server URL: %w", err)
		}
		s.client = c
		return nil
	}
}

func NewGitHubSource(owner, repo, ref, catalogPath, policyPath string, maxCourses int, opts ...GitHubOption) (*GitHubSource, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}
	if ref == "" {
		ref = "main"
	}
	s := &GitHubSource{
		Owner:       owner,
		Repo:        repo,
		Ref:         ref,
		CatalogPath: catalogPath,
		PolicyPath:  policyPath,
		MaxCourses:  maxCourses,
		client:      github.NewClient(nil),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *GitHubSource) Fetch(ctx context.Context, log logging.InternalLogger) (*Base, error) {
	log.Info("starting GitHub sync for repo %s/%s (ref: %s)", s.Owner, s.Repo, s.Ref)

	courses, err := s.courses(ctx, log)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCatalog(courses, s.MaxCourses); err != nil {
		return nil, fmt.Errorf("validating catalog '%s': %w", s.CatalogPath, err)
	}

	rows, err := s.policies(ctx, log)
	if err != nil {
		return nil, err
	}

	source := fmt.Sprintf("github:%s/%s@%s", s.Owner, s.Repo, s.Ref)
	return buildBase(log, courses, rows, source)
}

func (s *GitHubSource) courses(ctx context.Context, log logging.InternalLogger) ([]core.Course, error) {
	content, format, err := s.download(ctx, log, s.CatalogPath)
	if err != nil {
		return nil, err
	}
	courses, err := catalog.ReadCourses(strings.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("loading courses from '%s': %w", s.CatalogPath, err)
	}
	return courses, nil
}

func (s *GitHubSource) policies(ctx context.Context, log logging.InternalLogger) ([]core.PolicyRow, error) {
	content, format, err := s.download(ctx, log, s.PolicyPath)
	if err != nil {
		return nil, err
	}
	rows, err := catalog.ReadPolicies(strings.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("loading policies from '%s': %w", s.PolicyPath, err)
	}
	return rows, nil
}

func (s *GitHubSource) download(ctx context.Context, log logging.InternalLogger, path string) (string, catalog.Format, error) {
	format, err := catalog.FormatFromPath(path)
	if err != nil {
		return "", "", err
	}

	log.Info("downloading '%s'", path)
	fileContent, _, _, err := s.client.Repositories.GetContents(ctx, s.Owner, s.Repo, path, &github.RepositoryContentGetOptions{
		Ref: s.Ref,
	})
	if err != nil {
		return "", "", fmt.Errorf("download %s: %w", path, err)
	}
	if fileContent == nil {
		return "", "", fmt.Errorf("download %s: path is a directory", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("decode content %s: %w", path, err)
	}
	return content, format, nil
}
