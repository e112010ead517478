package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/projects/usecase"
)

// ProjectWatcher repoints file watching at a project root.
type ProjectWatcher interface {
	WatchProject(ctx context.Context, root string) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	uc      *usecase.Set
	watcher ProjectWatcher
	log     *zap.Logger
}

// New builds a Handler. watcher may be nil, which disables repointing.
func New(uc *usecase.Set, watcher ProjectWatcher, logger *zap.Logger) *Handler {
	return &Handler{
		uc:      uc,
		watcher: watcher,
		log:     logger.Named("projects"),
	}
}

type pathReq struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type projectsResponse struct {
	Projects        []ProjectDTO `json:"projects"`
	ActiveProjectID *string      `json:"activeProjectId"`
}

type projectResponse struct {
	Project *ProjectDTO `json:"project"`
}

type successResponse struct {
	Success bool `json:"success"`
}
