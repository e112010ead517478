// Package usecase holds the project-management operations exposed over HTTP.
// Each use case is a thin wrapper around ConfigService that turns storage
// errors into *domain.Error values the handlers can render.
package usecase

import (
	"context"
	"errors"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

// ConfigService is the subset of service.ConfigService the use cases need.
type ConfigService interface {
	AddProject(ctx context.Context, root, name string) (*domain.Project, error)
	GetProjects(ctx context.Context) ([]domain.Project, error)
	GetActiveProject(ctx context.Context) (*domain.Project, error)
	SetActiveProject(ctx context.Context, id string) error
	RemoveProject(ctx context.Context, id string) error
	ValidatePath(path string) domain.ValidatePathResult
}

// AddProject registers a project by its root path.
type AddProject struct {
	config ConfigService
}

func NewAddProject(config ConfigService) *AddProject {
	return &AddProject{config: config}
}

// Execute adds the project at root. name may be empty.
func (uc *AddProject) Execute(ctx context.Context, root, name string) (*domain.Project, error) {
	p, err := uc.config.AddProject(ctx, root, name)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, domain.ErrPathNotFound):
		return nil, domain.NewInvalidPathError(err)
	case errors.Is(err, domain.ErrProjectExists):
		return nil, domain.NewProjectAlreadyExistsError(err)
	default:
		return nil, err
	}
}

// SetActiveProject switches the active project.
type SetActiveProject struct {
	config ConfigService
}

func NewSetActiveProject(config ConfigService) *SetActiveProject {
	return &SetActiveProject{config: config}
}

func (uc *SetActiveProject) Execute(ctx context.Context, projectID string) error {
	err := uc.config.SetActiveProject(ctx, projectID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return domain.NewProjectNotFoundError(projectID, err)
	}
	return err
}

// GetProjectsResult pairs the project list with the active id.
type GetProjectsResult struct {
	Projects        []domain.Project
	ActiveProjectID *string
}

// GetProjects lists projects and the active project id.
type GetProjects struct {
	config ConfigService
}

func NewGetProjects(config ConfigService) *GetProjects {
	return &GetProjects{config: config}
}

// Execute issues two independent reads, list then active. A concurrent
// activation between them can yield an id from a newer state than the list.
func (uc *GetProjects) Execute(ctx context.Context) (*GetProjectsResult, error) {
	projects, err := uc.config.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	active, err := uc.config.GetActiveProject(ctx)
	if err != nil {
		return nil, err
	}

	res := &GetProjectsResult{Projects: projects}
	if active != nil {
		id := active.ID
		res.ActiveProjectID = &id
	}
	return res, nil
}

type GetActiveProject struct {
	config ConfigService
}

func NewGetActiveProject(config ConfigService) *GetActiveProject {
	return &GetActiveProject{config: config}
}

func (uc *GetActiveProject) Execute(ctx context.Context) (*domain.Project, error) {
	return uc.config.GetActiveProject(ctx)
}

type RemoveProject struct {
	config ConfigService
}

func NewRemoveProject(config ConfigService) *RemoveProject {
	return &RemoveProject{config: config}
}

func (uc *RemoveProject) Execute(ctx context.Context, projectID string) error {
	return uc.config.RemoveProject(ctx, projectID)
}

type ValidateProjectPath struct {
	config ConfigService
}

func NewValidateProjectPath(config ConfigService) *ValidateProjectPath {
	return &ValidateProjectPath{config: config}
}

// Execute validates a .beads path (or project root).
func (uc *ValidateProjectPath) Execute(beadsPath string) domain.ValidatePathResult {
	return uc.config.ValidatePath(beadsPath)
}

// Set bundles every project use case for the composition root.
type Set struct {
	GetProjects         *GetProjects
	GetActiveProject    *GetActiveProject
	AddProject          *AddProject
	RemoveProject       *RemoveProject
	SetActiveProject    *SetActiveProject
	ValidateProjectPath *ValidateProjectPath
}

// NewSet builds all use cases over one ConfigService.
func NewSet(config ConfigService) *Set {
	return &Set{
		GetProjects:         NewGetProjects(config),
		GetActiveProject:    NewGetActiveProject(config),
		AddProject:          NewAddProject(config),
		RemoveProject:       NewRemoveProject(config),
		SetActiveProject:    NewSetActiveProject(config),
		ValidateProjectPath: NewValidateProjectPath(config),
	}
}
