package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/advisor/internal/api/presenter"
	"github.com/darmiel/advisor/internal/core"
)

const defaultAuditLimit = 50

// handleAdminAudit processes requests to retrieve audit log entries.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	// filters
	q := r.URL.Query()
	limitStr := q.Get("limit")

	filterCorrelationID := q.Get("correlation_id")
	filterFingerprint := q.Get("fingerprint")
	filterAction := q.Get("action")

	limit := defaultAuditLimit
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			logger.Warn().Err(err).Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	var filter func(core.AuditEntry) bool
	if filterCorrelationID != "" || filterFingerprint != "" || filterAction != "" {
		logger.Debug().Msg("applying audit log filters")
		filter = func(entry core.AuditEntry) bool {
			if filterCorrelationID != "" && entry.ID != filterCorrelationID {
				return false
			}
			if filterFingerprint != "" && entry.ProfileFingerprint != filterFingerprint {
				return false
			}
			if filterAction != "" && entry.Action != filterAction {
				return false
			}
			return true
		}
	}

	entries, err := s.advisor.Audits(filter, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Err(w, r, err, "failed to retrieve audit logs")
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}
