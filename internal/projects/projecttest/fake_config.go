// Package projecttest provides test doubles for the projects packages.
package projecttest

import (
	"context"
	"sync"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

// FakeConfigService is a usecase.ConfigService with overridable behaviour.
// Nil funcs return zero values. Calls are counted per method.
type FakeConfigService struct {
	AddProjectFn       func(ctx context.Context, root, name string) (*domain.Project, error)
	GetProjectsFn      func(ctx context.Context) ([]domain.Project, error)
	GetActiveProjectFn func(ctx context.Context) (*domain.Project, error)
	SetActiveProjectFn func(ctx context.Context, id string) error
	RemoveProjectFn    func(ctx context.Context, id string) error
	ValidatePathFn     func(path string) domain.ValidatePathResult

	mu    sync.Mutex
	calls map[string]int
}

func (f *FakeConfigService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

// Calls returns how many times method was invoked.
func (f *FakeConfigService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeConfigService) AddProject(ctx context.Context, root, name string) (*domain.Project, error) {
	f.record("AddProject")
	if f.AddProjectFn == nil {
		return nil, nil
	}
	return f.AddProjectFn(ctx, root, name)
}

func (f *FakeConfigService) GetProjects(ctx context.Context) ([]domain.Project, error) {
	f.record("GetProjects")
	if f.GetProjectsFn == nil {
		return nil, nil
	}
	return f.GetProjectsFn(ctx)
}

func (f *FakeConfigService) GetActiveProject(ctx context.Context) (*domain.Project, error) {
	f.record("GetActiveProject")
	if f.GetActiveProjectFn == nil {
		return nil, nil
	}
	return f.GetActiveProjectFn(ctx)
}

func (f *FakeConfigService) SetActiveProject(ctx context.Context, id string) error {
	f.record("SetActiveProject")
	if f.SetActiveProjectFn == nil {
		return nil
	}
	return f.SetActiveProjectFn(ctx, id)
}

func (f *FakeConfigService) RemoveProject(ctx context.Context, id string) error {
	f.record("RemoveProject")
	if f.RemoveProjectFn == nil {
		return nil
	}
	return f.RemoveProjectFn(ctx, id)
}

func (f *FakeConfigService) ValidatePath(path string) domain.ValidatePathResult {
	f.record("ValidatePath")
	if f.ValidatePathFn == nil {
		return domain.ValidatePathResult{}
	}
	return f.ValidatePathFn(path)
}
