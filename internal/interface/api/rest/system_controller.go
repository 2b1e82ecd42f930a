package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

type (
	Welcome struct {
		Name      string            `json:"name"`
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	Health struct {
		Status    string  `json:"status"`
		Timestamp string  `json:"timestamp"`
		Uptime    float64 `json:"uptime"`
	}
)

// SystemController serves the service root, the probe endpoint and the
// fallback for unmatched routes.
type SystemController struct {
	name      string
	startedAt time.Time
	now       func() time.Time
}

func NewSystemController(r *gin.Engine, name string, startedAt time.Time) *SystemController {
	sc := &SystemController{
		name:      name,
		startedAt: startedAt,
		now:       time.Now,
	}

	r.GET(RouteRoot, sc.WelcomeHandler)
	r.GET(RouteHealth, sc.HealthHandler)
	r.NoRoute(sc.NotFoundHandler)

	return sc
}

func (sc *SystemController) WelcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Welcome{
		Name:    sc.name,
		Message: "Welcome to the Users API",
		Version: Version,
		Endpoints: map[string]string{
			"health":     "GET " + RouteHealth,
			"users":      "GET " + RouteUsers,
			"user":       "GET " + RouteUser,
			"createUser": "POST " + RouteUsers,
			"updateUser": "PUT " + RouteUser,
			"deleteUser": "DELETE " + RouteUser,
			"upload":     "POST " + RouteUpload,
		},
	})
}

func (sc *SystemController) HealthHandler(c *gin.Context) {
	now := sc.now()
	uptime := now.Sub(sc.startedAt).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	c.JSON(http.StatusOK, Health{
		Status:    "OK",
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Uptime:    uptime,
	})
}

func (sc *SystemController) NotFoundHandler(c *gin.Context) {
	fail(c, http.StatusNotFound, MsgRouteNotFound)
}
