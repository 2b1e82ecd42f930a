package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of the "result" dimension.
const (
	AppRequests    = "app_requests_total"
	UserCreated    = "user_created_total"
	UserUpdated    = "user_updated_total"
	UserDeleted    = "user_deleted_total"
	UploadAccepted = "upload_accepted_total"
	UploadRejected = "upload_rejected_total"
)

// NewCounter registers on the default registry, call it once per process.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "usersapi",
			Name:      "general_counters",
		},
		[]string{"result"})
}
