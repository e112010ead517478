package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectRoot(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/Users/test/proj/.beads", "/Users/test/proj"},
		{"/Users/test/proj/.beads/", "/Users/test/proj"},
		{"/Users/test/proj", "/Users/test/proj"},
		{"/Users/test/proj/", "/Users/test/proj/"},
		{"/Users/test/proj/.beadsx", "/Users/test/proj/.beadsx"},
		{"/Users/test/my.beads", "/Users/test/my.beads"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ProjectRoot(tc.in))
		})
	}
}

func TestBeadsPathRoundTrip(t *testing.T) {
	for _, root := range []string{"/a", "/a/b/c", "/with space/proj"} {
		assert.Equal(t, root+"/.beads", BeadsPath(root))
		assert.Equal(t, root, ProjectRoot(BeadsPath(root)))
	}
}

func TestAppConfigActive(t *testing.T) {
	cfg := &AppConfig{
		Projects: []Project{{ID: "p1"}, {ID: "p2"}},
	}
	assert.Nil(t, cfg.Active())

	cfg.ActiveProjectID = "p2"
	active := cfg.Active()
	if assert.NotNil(t, active) {
		assert.Equal(t, "p2", active.ID)
	}

	cfg.ActiveProjectID = "gone"
	assert.Nil(t, cfg.Active())
}

func TestAppConfigClone(t *testing.T) {
	cfg := &AppConfig{Projects: []Project{{ID: "p1", Name: "one"}}, ActiveProjectID: "p1"}
	clone := cfg.Clone()
	clone.Projects[0].Name = "changed"

	assert.Equal(t, "one", cfg.Projects[0].Name)
	assert.Equal(t, "p1", clone.ActiveProjectID)
}

func TestErrorCodes(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewProjectNotFoundError("abc", ErrProjectNotFound))

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, code)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
	assert.Equal(t, "wrapped: Project with ID 'abc' not found", err.Error())

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}
