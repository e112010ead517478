package http

import "github.com/arttttt/Bealin/internal/projects/domain"

// addedAtLayout renders timestamps as ISO-8601 with milliseconds.
const addedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// ProjectDTO is the wire shape of a project. Path points at the .beads
// folder, not the project root.
type ProjectDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	AddedAt string `json:"addedAt"`
}

func ToDTO(p domain.Project) ProjectDTO {
	return ProjectDTO{
		ID:      p.ID,
		Name:    p.Name,
		Path:    domain.BeadsPath(p.Path),
		AddedAt: p.AddedAt.UTC().Format(addedAtLayout),
	}
}

// ToDTOList never returns nil so an empty list encodes as [].
func ToDTOList(projects []domain.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToDTO(p))
	}
	return out
}

// BeadsPathToProjectPath is the inverse of the DTO path rewrite.
func BeadsPathToProjectPath(beadsPath string) string {
	return domain.ProjectRoot(beadsPath)
}
