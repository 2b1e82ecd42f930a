package rest

const (
	RouteRoot = "/"

	// api
	RouteApi = "/api"

	RouteUsers  = RouteApi + "/users"
	RouteUser   = RouteUsers + "/:id"
	RouteUpload = RouteApi + "/upload"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
