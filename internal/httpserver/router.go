package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"projectdesk/internal/handler"
	"projectdesk/internal/schema"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus is satisfied by *mq.Publisher.
type BrokerStatus interface {
	IsConnected() bool
}

type Handlers struct {
	Projects  *handler.ProjectHandler
	Employees *handler.EmployeeHandler
	Tasks     *handler.TaskHandler
}

type Deps struct {
	Logger *zap.Logger
	// DB and Broker are optional. Only DB gates readiness; Broker is reported.
	DB     Pinger
	Broker BrokerStatus
}

func NewRouter(h Handlers, deps Deps) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	// RequestLogger sits outside Recovery so a recovered panic is still logged as a 500.
	r.Use(TraceMiddleware(), RequestLogger(deps.Logger), Recovery(deps.Logger))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, schema.ErrorResponse{Detail: "Not Found"})
	})

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/readyz", func(c *gin.Context) {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
			defer cancel()

			if err := deps.DB.Ping(ctx); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}

		// events are best-effort, a lost broker does not stop CRUD traffic
		resp := gin.H{"status": "ready"}
		if deps.Broker != nil {
			resp["mq"] = "connected"
			if !deps.Broker.IsConnected() {
				resp["mq"] = "disconnected"
			}
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/docs")
	})
	r.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"routes": routeList(r)})
	})

	api := r.Group("/api")
	h.Projects.Register(api.Group("/projects"))
	h.Employees.Register(api.Group("/employees"))
	h.Tasks.Register(api.Group("/tasks"))

	return r
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func routeList(r *gin.Engine) []routeInfo {
	routes := r.Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, ri := range routes {
		out = append(out, routeInfo{Method: ri.Method, Path: ri.Path})
	}
	return out
}
