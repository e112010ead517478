// Package usecase implements read-only issue queries against the active
// project.
package usecase

import (
	"context"
	"sort"

	"github.com/arttttt/Bealin/internal/issues/domain"
	projectdomain "github.com/arttttt/Bealin/internal/projects/domain"
)

type IssueRepository interface {
	FindAll(ctx context.Context, root string) ([]domain.Issue, error)
	FindByID(ctx context.Context, root, id string) (*domain.Issue, error)
}

type ActiveProjectSource interface {
	GetActiveProject(ctx context.Context) (*projectdomain.Project, error)
}

func activeRoot(ctx context.Context, projects ActiveProjectSource) (string, error) {
	p, err := projects.GetActiveProject(ctx)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", domain.ErrNoActiveProject
	}
	return p.Path, nil
}

type ListIssues struct {
	projects ActiveProjectSource
	repo     IssueRepository
}

func NewListIssues(projects ActiveProjectSource, repo IssueRepository) *ListIssues {
	return &ListIssues{projects: projects, repo: repo}
}

func (uc *ListIssues) Execute(ctx context.Context, filter domain.Filter) ([]domain.Issue, error) {
	root, err := activeRoot(ctx, uc.projects)
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.FindAll(ctx, root)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Issue, 0, len(all))
	for i := range all {
		if filter.Match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

type GetIssue struct {
	projects ActiveProjectSource
	repo     IssueRepository
}

func NewGetIssue(projects ActiveProjectSource, repo IssueRepository) *GetIssue {
	return &GetIssue{projects: projects, repo: repo}
}

// Execute returns domain.ErrIssueNotFound for an unknown id.
func (uc *GetIssue) Execute(ctx context.Context, id string) (*domain.Issue, error) {
	root, err := activeRoot(ctx, uc.projects)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, root, id)
}

type ListLabels struct {
	projects ActiveProjectSource
	repo     IssueRepository
}

func NewListLabels(projects ActiveProjectSource, repo IssueRepository) *ListLabels {
	return &ListLabels{projects: projects, repo: repo}
}

// Execute counts label usage across all issues, sorted by name.
func (uc *ListLabels) Execute(ctx context.Context) ([]domain.Label, error) {
	root, err := activeRoot(ctx, uc.projects)
	if err != nil {
		return nil, err
	}
	issues, err := uc.repo.FindAll(ctx, root)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range issues {
		for _, l := range issues[i].Labels {
			counts[l]++
		}
	}
	labels := make([]domain.Label, 0, len(counts))
	for name, n := range counts {
		labels = append(labels, domain.Label{Name: name, Count: n})
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	return labels, nil
}

type Set struct {
	ListIssues *ListIssues
	GetIssue   *GetIssue
	ListLabels *ListLabels
}

func NewSet(projects ActiveProjectSource, repo IssueRepository) *Set {
	return &Set{
		ListIssues: NewListIssues(projects, repo),
		GetIssue:   NewGetIssue(projects, repo),
		ListLabels: NewListLabels(projects, repo),
	}
}
