package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/advisor/internal/audit"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/engine"
	"github.com/darmiel/advisor/internal/knowledge"
)

const (
	ActionRecommend = "recommend"
	ActionExplain   = "explain"
)

type AdvisorService struct {
	knowledge      *knowledge.Manager
	engine         *engine.Engine
	auditor        core.Auditor
	redactProfiles bool
}

type Option func(*AdvisorService)

// WithRedactedProfiles stores only a fingerprint of the profile in audit entries.
func WithRedactedProfiles(redact bool) Option {
	return func(s *AdvisorService) {
		s.redactProfiles = redact
	}
}

func NewAdvisorService(
	km *knowledge.Manager,
	eng *engine.Engine,
	auditor core.Auditor,
	opts ...Option,
) *AdvisorService {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	s := &AdvisorService{
		knowledge: km,
		engine:    eng,
		auditor:   auditor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend runs a recommendation against the current knowledge base.
func (s *AdvisorService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	trace, version, err := s.evaluate(ctx, ActionRecommend, req)
	if err != nil {
		return nil, err
	}
	return &RecommendResponse{
		Recommendation:   trace.Recommendation,
		KnowledgeVersion: version,
	}, nil
}

// Explain runs a recommendation and returns the full trace, including how the ceiling was resolved.
func (s *AdvisorService) Explain(ctx context.Context, req ExplainRequest) (*core.EvaluationTrace, error) {
	trace, _, err := s.evaluate(ctx, ActionExplain, RecommendRequest(req))
	if err != nil {
		return nil, err
	}
	return trace, nil
}

func (s *AdvisorService) evaluate(ctx context.Context, action string, req RecommendRequest) (*core.EvaluationTrace, string, error) {
	fingerprint := audit.ProfileFingerprint(req.Profile)
	logger := log.Ctx(ctx)
	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("profile", fingerprint)
	})

	entry := core.AuditEntry{
		ID:                 req.CorrelationID,
		Time:               time.Now(),
		Action:             action,
		ProfileFingerprint: fingerprint,
	}
	if !s.redactProfiles {
		profile := req.Profile
		entry.Profile = &profile
	}
	defer func() {
		if err := s.auditor.Log(entry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log")
		}
	}()

	base, err := s.knowledge.Get()
	if err != nil {
		entry.Error = err.Error()
		return nil, "", classify(err)
	}
	entry.KnowledgeVersion = base.Version

	rec, ceiling, err := s.engine.Advise(base.Catalog, base.Resolver, req.Profile)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation failed")
		entry.Error = err.Error()
		return nil, base.Version, classify(err)
	}

	entry.Success = true
	entry.Ceiling = rec.Ceiling
	entry.TotalCredits = rec.TotalCredits
	for _, c := range rec.Courses {
		entry.Courses = append(entry.Courses, c.Code)
	}

	logger.Info().
		Int("ceiling", rec.Ceiling).
		Int("total_credits", rec.TotalCredits).
		Int("courses", len(rec.Courses)).
		Str("knowledge_version", base.Version).
		Msgf("%s completed", action)

	return &core.EvaluationTrace{
		CorrelationID:  req.CorrelationID,
		Profile:        req.Profile,
		Ceiling:        ceiling,
		Recommendation: rec,
		Decisions:      rec.Explanations.Entries(),
	}, base.Version, nil
}

// Catalog returns the course catalog of the current knowledge base.
func (s *AdvisorService) Catalog(_ context.Context) (*CatalogView, error) {
	base, err := s.knowledge.Get()
	if err != nil {
		return nil, classify(err)
	}
	return &CatalogView{
		Courses:  base.Catalog,
		Version:  base.Version,
		Source:   base.Source,
		LoadedAt: base.LoadedAt.Format(time.RFC3339),
	}, nil
}

// Policy returns the policy table and the credit rules parsed from it.
func (s *AdvisorService) Policy(_ context.Context) (*PolicyView, error) {
	base, err := s.knowledge.Get()
	if err != nil {
		return nil, classify(err)
	}
	return &PolicyView{
		Rows:  base.Policy,
		Rules: base.Resolver.Rules(),
	}, nil
}

// Audits returns the most recent audit entries matching filter.
func (s *AdvisorService) Audits(filter func(core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	reader, ok := s.auditor.(core.AuditLogReader)
	if !ok {
		return nil, httpError(http.StatusNotImplemented,
			fmt.Errorf("the configured auditor does not support querying"))
	}
	entries, err := reader.Find(filter, limit)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("reading audit log: %w", err))
	}
	return entries, nil
}
