package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/advisor/internal/api/presenter"
	"github.com/darmiel/advisor/internal/service"
)

// handleRecommend computes a recommendation for the submitted profile.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload ProfilePayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode recommend request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	profile, err := payload.Profile()
	if err != nil {
		presenter.Err(w, r, err, "recommendation failed")
		return
	}

	resp, err := s.advisor.Recommend(ctx, service.RecommendRequest{
		Profile:       profile,
		CorrelationID: presenter.CorrelationID(ctx),
	})
	if err != nil {
		presenter.Err(w, r, err, "recommendation failed")
		return
	}

	w.Header().Set("X-Knowledge-Version", resp.KnowledgeVersion)
	presenter.JSON(w, r, resp.Recommendation, http.StatusOK)
}

// handleExplain computes a recommendation and returns its full evaluation trace.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload ProfilePayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode explain request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	profile, err := payload.Profile()
	if err != nil {
		presenter.Err(w, r, err, "explanation failed")
		return
	}

	trace, err := s.advisor.Explain(ctx, service.ExplainRequest{
		Profile:       profile,
		CorrelationID: presenter.CorrelationID(ctx),
	})
	if err != nil {
		presenter.Err(w, r, err, "explanation failed")
		return
	}

	presenter.JSON(w, r, trace, http.StatusOK)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	view, err := s.advisor.Catalog(r.Context())
	if err != nil {
		presenter.Err(w, r, err, "catalog unavailable")
		return
	}
	presenter.JSON(w, r, view, http.StatusOK)
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	view, err := s.advisor.Policy(r.Context())
	if err != nil {
		presenter.Err(w, r, err, "policy unavailable")
		return
	}
	presenter.JSON(w, r, view, http.StatusOK)
}
