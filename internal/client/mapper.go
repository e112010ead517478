package client

import "time"

// ToDomain maps a wire project. An unparsable addedAt maps to the zero time.
func ToDomain(dto ProjectDTO, isActive bool) Project {
	addedAt, _ := time.Parse(addedAtLayout, dto.AddedAt)
	return Project{
		ID:       dto.ID,
		Name:     dto.Name,
		Path:     dto.Path,
		AddedAt:  addedAt,
		IsActive: isActive,
	}
}

// ToDomainList marks the project whose id equals activeID.
func ToDomainList(dtos []ProjectDTO, activeID *string) []Project {
	out := make([]Project, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, ToDomain(dto, activeID != nil && dto.ID == *activeID))
	}
	return out
}
