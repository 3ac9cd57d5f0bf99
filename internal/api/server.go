package api

import (
	"net/http"

	"github.com/darmiel/advisor/internal/api/middleware"
	"github.com/darmiel/advisor/internal/service"
	"github.com/darmiel/advisor/internal/tasks"
)

type Server struct {
	advisor     *service.AdvisorService
	taskManager *tasks.Manager
}

func NewServer(advisor *service.AdvisorService, taskManager *tasks.Manager) *Server {
	return &Server{
		advisor:     advisor,
		taskManager: taskManager,
	}
}

func (s *Server) Routes(adminSigningKey []byte) http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// advisor routes
	mux.HandleFunc("POST "+RecommendRoute, s.handleRecommend)
	mux.HandleFunc("POST "+ExplainRoute, s.handleExplain)
	mux.HandleFunc("GET "+CatalogRoute, s.handleCatalog)
	mux.HandleFunc("GET "+PolicyRoute, s.handlePolicy)

	// admin routes
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
	if s.taskManager != nil {
		adminMux.HandleFunc("GET "+ListTasksRoute, s.handleListTasks)
		adminMux.HandleFunc("POST "+TriggerTaskRoute, s.handleTriggerTask)
		adminMux.HandleFunc("GET "+LogsForTaskRoute, s.handleLogsForTask)
	}
	mux.Handle(AdminParent, middleware.AdminAuth(adminSigningKey)(adminMux))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
