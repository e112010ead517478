package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arttttt/Bealin/internal/projects/domain"
	"github.com/arttttt/Bealin/internal/projects/projecttest"
	"github.com/arttttt/Bealin/internal/projects/usecase"
)

func TestAddProject(t *testing.T) {
	ctx := context.Background()

	t.Run("returns created project", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			AddProjectFn: func(_ context.Context, root, name string) (*domain.Project, error) {
				return &domain.Project{ID: "p1", Path: root, Name: name}, nil
			},
		}
		p, err := usecase.NewAddProject(fake).Execute(ctx, "/work/p", "P")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, "/work/p", p.Path)
	})

	cases := []struct {
		name     string
		cause    error
		wantCode domain.Code
	}{
		{"path not found", fmt.Errorf("/x: %w", domain.ErrPathNotFound), domain.CodeInvalidPath},
		{"already exists", fmt.Errorf("/x: %w", domain.ErrProjectExists), domain.CodeAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &projecttest.FakeConfigService{
				AddProjectFn: func(context.Context, string, string) (*domain.Project, error) {
					return nil, tc.cause
				},
			}
			_, err := usecase.NewAddProject(fake).Execute(ctx, "/x", "")
			code, ok := domain.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, code)
		})
	}

	t.Run("other errors propagate unchanged", func(t *testing.T) {
		boom := errors.New("disk full")
		fake := &projecttest.FakeConfigService{
			AddProjectFn: func(context.Context, string, string) (*domain.Project, error) {
				return nil, boom
			},
		}
		_, err := usecase.NewAddProject(fake).Execute(ctx, "/x", "")
		assert.Same(t, boom, err)
	})
}

func TestSetActiveProject(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			SetActiveProjectFn: func(_ context.Context, id string) error {
				return fmt.Errorf("%s: %w", id, domain.ErrProjectNotFound)
			},
		}
		err := usecase.NewSetActiveProject(fake).Execute(ctx, "nope")

		var de *domain.Error
		require.True(t, errors.As(err, &de))
		assert.Equal(t, domain.CodeNotFound, de.Code)
		assert.Equal(t, "Project with ID 'nope' not found", de.Message)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("store offline")
		fake := &projecttest.FakeConfigService{
			SetActiveProjectFn: func(context.Context, string) error { return boom },
		}
		err := usecase.NewSetActiveProject(fake).Execute(ctx, "p1")
		assert.Same(t, boom, err)
	})

	t.Run("success", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{}
		assert.NoError(t, usecase.NewSetActiveProject(fake).Execute(ctx, "p1"))
		assert.Equal(t, 1, fake.Calls("SetActiveProject"))
	})
}

func TestGetProjects(t *testing.T) {
	ctx := context.Background()
	projects := []domain.Project{{ID: "p1"}, {ID: "p2"}}

	t.Run("with active project", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			GetProjectsFn: func(context.Context) ([]domain.Project, error) { return projects, nil },
			GetActiveProjectFn: func(context.Context) (*domain.Project, error) {
				return &domain.Project{ID: "p2"}, nil
			},
		}
		res, err := usecase.NewGetProjects(fake).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, res.Projects, 2)
		require.NotNil(t, res.ActiveProjectID)
		assert.Equal(t, "p2", *res.ActiveProjectID)
	})

	t.Run("active id comes from the active lookup even if absent from list", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			GetProjectsFn: func(context.Context) ([]domain.Project, error) { return projects, nil },
			GetActiveProjectFn: func(context.Context) (*domain.Project, error) {
				return &domain.Project{ID: "p3"}, nil
			},
		}
		res, err := usecase.NewGetProjects(fake).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "p3", *res.ActiveProjectID)
	})

	t.Run("no active project", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			GetProjectsFn: func(context.Context) ([]domain.Project, error) { return projects, nil },
		}
		res, err := usecase.NewGetProjects(fake).Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, res.ActiveProjectID)
	})

	t.Run("list error", func(t *testing.T) {
		fake := &projecttest.FakeConfigService{
			GetProjectsFn: func(context.Context) ([]domain.Project, error) { return nil, errors.New("x") },
		}
		_, err := usecase.NewGetProjects(fake).Execute(ctx)
		assert.Error(t, err)
		assert.Equal(t, 0, fake.Calls("GetActiveProject"))
	})
}

func TestPassThroughUseCases(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	fake := &projecttest.FakeConfigService{
		RemoveProjectFn: func(context.Context, string) error { return boom },
		GetActiveProjectFn: func(context.Context) (*domain.Project, error) {
			return &domain.Project{ID: "p1"}, nil
		},
		ValidatePathFn: func(path string) domain.ValidatePathResult {
			return domain.ValidatePathResult{Valid: true, SuggestedName: path}
		},
	}
	set := usecase.NewSet(fake)

	assert.Same(t, boom, set.RemoveProject.Execute(ctx, "p1"))

	active, err := set.GetActiveProject.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p1", active.ID)

	res := set.ValidateProjectPath.Execute("/x/.beads")
	assert.True(t, res.Valid)
	assert.Equal(t, "/x/.beads", res.SuggestedName)
}
