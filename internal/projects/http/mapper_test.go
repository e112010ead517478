package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

func TestToDTO(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	p := domain.Project{
		ID:      "abc",
		Name:    "Demo",
		Path:    "/home/me/demo",
		AddedAt: time.Date(2026, 3, 1, 12, 30, 0, 250_000_000, loc),
	}

	dto := ToDTO(p)

	assert.Equal(t, "abc", dto.ID)
	assert.Equal(t, "Demo", dto.Name)
	assert.Equal(t, "/home/me/demo/.beads", dto.Path)
	assert.Equal(t, "2026-03-01T09:30:00.250Z", dto.AddedAt)
	assert.Equal(t, p.Path, BeadsPathToProjectPath(dto.Path))
}

func TestToDTOList(t *testing.T) {
	assert.NotNil(t, ToDTOList(nil))
	assert.Empty(t, ToDTOList(nil))

	out := ToDTOList([]domain.Project{{ID: "a", Path: "/a"}, {ID: "b", Path: "/b"}})
	assert.Equal(t, []string{"/a/.beads", "/b/.beads"}, []string{out[0].Path, out[1].Path})
}

func TestBeadsPathToProjectPath(t *testing.T) {
	cases := map[string]string{
		"/work/demo/.beads":  "/work/demo",
		"/work/demo/.beads/": "/work/demo",
		"/work/demo":         "/work/demo",
		"/work/demo.beads":   "/work/demo.beads",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, BeadsPathToProjectPath(in), in)
	}
}
