package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/arttttt/Bealin/internal/api/http"
	"github.com/arttttt/Bealin/internal/api/http/middleware"
	issuehttp "github.com/arttttt/Bealin/internal/issues/http"
	issueusecase "github.com/arttttt/Bealin/internal/issues/usecase"
	projecthttp "github.com/arttttt/Bealin/internal/projects/http"
	projectusecase "github.com/arttttt/Bealin/internal/projects/usecase"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Logger      *zap.Logger

	Store    httpapi.Pinger
	Projects *projectusecase.Set
	Issues   *issueusecase.Set
	Watcher  projecthttp.ProjectWatcher
	Changes  httpapi.ChangeFeed
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	projectHandler := projecthttp.New(dep.Projects, dep.Watcher, dep.Logger)
	projectHandler.Register(api.Group("/projects"))

	if dep.Issues != nil {
		issuehttp.New(dep.Issues, dep.Logger).Register(api)
	}
	if dep.Changes != nil {
		httpapi.NewEventsHandler(dep.Changes, dep.Logger).RegisterRoutes(api)
	}

	return r
}
