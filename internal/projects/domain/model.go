package domain

import (
	"strings"
	"time"
)

// BeadsDir is the folder inside a project root that holds Beads data.
const BeadsDir = ".beads"

// Project represents a registered Beads project. Path is the project root,
// never the .beads folder itself.
type Project struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	AddedAt time.Time `json:"addedAt" yaml:"added_at"`
}

// AppConfig is the persisted document: the project list plus the active pointer.
type AppConfig struct {
	Projects        []Project `json:"projects" yaml:"projects"`
	ActiveProjectID string    `json:"activeProjectId,omitempty" yaml:"active_project_id,omitempty"`
}

// FindByID returns the index of the project with the given id, or -1.
func (c *AppConfig) FindByID(id string) int {
	for i := range c.Projects {
		if c.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByPath returns the index of the project rooted at path, or -1.
func (c *AppConfig) FindByPath(path string) int {
	for i := range c.Projects {
		if c.Projects[i].Path == path {
			return i
		}
	}
	return -1
}

// Active returns a copy of the active project, or nil when none is set or the
// pointer no longer matches a project.
func (c *AppConfig) Active() *Project {
	if c.ActiveProjectID == "" {
		return nil
	}
	i := c.FindByID(c.ActiveProjectID)
	if i < 0 {
		return nil
	}
	p := c.Projects[i]
	return &p
}

// Clone returns a deep copy so callers can't mutate the service's state.
func (c *AppConfig) Clone() *AppConfig {
	out := &AppConfig{ActiveProjectID: c.ActiveProjectID}
	out.Projects = make([]Project, len(c.Projects))
	copy(out.Projects, c.Projects)
	return out
}

// ValidatePathResult is the outcome of checking a candidate project path.
type ValidatePathResult struct {
	Valid         bool   `json:"valid"`
	SuggestedName string `json:"suggestedName"`
}

// BeadsPath returns the .beads folder path for a project root.
func BeadsPath(root string) string {
	return root + "/" + BeadsDir
}

// ProjectRoot strips a trailing "/.beads" or "/.beads/" from p. Any other
// input is returned unchanged.
func ProjectRoot(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	if strings.HasSuffix(trimmed, "/"+BeadsDir) {
		return strings.TrimSuffix(trimmed, "/"+BeadsDir)
	}
	return p
}
