package api

import (
	"github.com/gin-gonic/gin"

	"tareasapi/auth"
	"tareasapi/logger"
	"tareasapi/observability"
	"tareasapi/server/middleware"
	"tareasapi/task"
	"tareasapi/user"
)

// API holds the handlers' dependencies.
type API struct {
	users   *user.Service
	tasks   *task.Store
	log     *logger.Logger
	metrics func() *observability.Metrics
}

// New creates the API over the user service and task store. The metrics
// provider may be nil; measurements are dropped silently then.
func New(users *user.Service, tasks *task.Store, log *logger.Logger, metrics func() *observability.Metrics) *API {
	if metrics == nil {
		metrics = func() *observability.Metrics { return nil }
	}
	return &API{
		users:   users,
		tasks:   tasks,
		log:     log.WithComponent("api"),
		metrics: metrics,
	}
}

// Register mounts all service routes on the router. The verifier backs
// the bearer gate on the protected group; authRateLimit throttles the
// credential routes per client IP in requests per minute (0 disables).
func (a *API) Register(r gin.IRouter, verifier auth.TokenVerifier, authRateLimit int) {
	r.GET("/", a.home)
	r.GET("/ui", a.demoUI)

	credentials := r.Group("")
	if authRateLimit > 0 {
		credentials.Use(middleware.RateLimit(authRateLimit))
	}
	credentials.POST("/registro", a.register)
	credentials.POST("/login", a.login)

	protected := r.Group("", middleware.RequireAuth(verifier, a.log, a.metrics))
	protected.GET("/tareas", a.tasksPage)
	protected.GET("/tareas/json", a.listTasks)
	protected.POST("/tareas", a.createTask)
	protected.PUT("/tareas/:id", a.updateTask)
	protected.DELETE("/tareas/:id", a.deleteTask)
}
