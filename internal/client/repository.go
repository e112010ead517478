package client

import "context"

// ProjectRepository is the domain-facing view of the project API.
type ProjectRepository interface {
	GetProjects(ctx context.Context) ([]Project, error)
	GetActiveProject(ctx context.Context) (*Project, error)
	AddProject(ctx context.Context, path, name string) (*Project, error)
	RemoveProject(ctx context.Context, id string) error
	SetActiveProject(ctx context.Context, id string) error
	ValidatePath(ctx context.Context, path string) (*PathValidation, error)
}

type ProjectRepositoryImpl struct {
	source ProjectSource
}

func NewProjectRepository(source ProjectSource) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{source: source}
}

func (r *ProjectRepositoryImpl) GetProjects(ctx context.Context) ([]Project, error) {
	res, err := r.source.FetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	return ToDomainList(res.Projects, res.ActiveProjectID), nil
}

// GetActiveProject returns nil when no project is active.
func (r *ProjectRepositoryImpl) GetActiveProject(ctx context.Context) (*Project, error) {
	res, err := r.source.FetchActiveProject(ctx)
	if err != nil || res.Project == nil {
		return nil, err
	}
	p := ToDomain(*res.Project, true)
	return &p, nil
}

// AddProject returns the new project marked active; the server activates
// every project it adds.
func (r *ProjectRepositoryImpl) AddProject(ctx context.Context, path, name string) (*Project, error) {
	res, err := r.source.AddProject(ctx, path, name)
	if err != nil {
		return nil, err
	}
	p := ToDomain(*res.Project, true)
	return &p, nil
}

func (r *ProjectRepositoryImpl) RemoveProject(ctx context.Context, id string) error {
	return r.source.RemoveProject(ctx, id)
}

func (r *ProjectRepositoryImpl) SetActiveProject(ctx context.Context, id string) error {
	return r.source.SetActiveProject(ctx, id)
}

func (r *ProjectRepositoryImpl) ValidatePath(ctx context.Context, path string) (*PathValidation, error) {
	res, err := r.source.ValidatePath(ctx, path)
	if err != nil {
		return nil, err
	}
	return &PathValidation{Valid: *res.Valid, SuggestedName: res.SuggestedName}, nil
}
