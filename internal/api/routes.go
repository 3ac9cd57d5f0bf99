package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"

	RecommendRoute = "/v1/recommend"
	ExplainRoute   = "/v1/explain"
	CatalogRoute   = "/v1/catalog"
	PolicyRoute    = "/v1/policy"

	AdminParent     = "/v1/admin/"
	ListAuditsRoute = AdminParent + "audits"

	TaskParent       = AdminParent + "tasks"
	ListTasksRoute   = TaskParent
	TriggerTaskRoute = TaskParent + "/{name}/trigger"
	LogsForTaskRoute = TaskParent + "/{name}/logs"
)
