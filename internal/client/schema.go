package client

// Wire schemas. Every decoded body is checked against its validate tags.

const addedAtLayout = "2006-01-02T15:04:05Z07:00"

type ProjectDTO struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	Path    string `json:"path" validate:"required"`
	AddedAt string `json:"addedAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type ProjectsResponse struct {
	Projects        []ProjectDTO `json:"projects" validate:"required,dive"`
	ActiveProjectID *string      `json:"activeProjectId"`
}

type ActiveProjectResponse struct {
	Project *ProjectDTO `json:"project"`
}

type AddProjectResponse struct {
	Project *ProjectDTO `json:"project" validate:"required"`
}

type SuccessResponse struct {
	Success *bool `json:"success" validate:"required"`
}

type ValidatePathResponse struct {
	Valid         *bool  `json:"valid" validate:"required"`
	SuggestedName string `json:"suggestedName"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
