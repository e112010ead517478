package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type route struct {
	status int
	body   string
}

// stubAPI answers "METHOD /path" with a canned response. The returned func
// yields the last request body sent to a key.
func stubAPI(t *testing.T, routes map[string]route) (*ProjectAPISource, func(key string) string) {
	t.Helper()
	var mu sync.Mutex
	seen := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen[key] = string(b)
		mu.Unlock()
		rt, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = io.WriteString(w, rt.body)
	}))
	t.Cleanup(srv.Close)
	sent := func(key string) string {
		mu.Lock()
		defer mu.Unlock()
		return seen[key]
	}
	return NewProjectAPISource(srv.URL+"/", srv.Client()), sent
}

const demoDTO = `{"id":"p1","name":"Demo","path":"/work/demo/.beads","addedAt":"2026-01-15T10:00:00.000Z"}`

func TestFetchProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("valid body", func(t *testing.T) {
		src, _ := stubAPI(t, map[string]route{
			"GET /api/projects": {200, `{"projects":[` + demoDTO + `],"activeProjectId":"p1"}`},
		})
		res, err := src.FetchProjects(ctx)
		require.NoError(t, err)
		require.Len(t, res.Projects, 1)
		require.NotNil(t, res.ActiveProjectID)
		assert.Equal(t, "p1", *res.ActiveProjectID)
	})

	t.Run("empty name is accepted", func(t *testing.T) {
		src, _ := stubAPI(t, map[string]route{
			"GET /api/projects": {200, `{"projects":[{"id":"p2","name":"","path":"/work/blank/.beads","addedAt":"2026-01-15T10:00:00.000Z"}],"activeProjectId":null}`},
		})
		res, err := src.FetchProjects(ctx)
		require.NoError(t, err)
		require.Len(t, res.Projects, 1)
		assert.Equal(t, "p2", res.Projects[0].ID)
		assert.Empty(t, res.Projects[0].Name)
		assert.Nil(t, res.ActiveProjectID)
	})

	invalid := map[string]string{
		"missing projects":   `{"activeProjectId":null}`,
		"project without id": `{"projects":[{"name":"x","path":"/x/.beads","addedAt":"2026-01-15T10:00:00.000Z"}],"activeProjectId":null}`,
		"bad timestamp":      `{"projects":[{"id":"a","name":"x","path":"/x/.beads","addedAt":"yesterday"}],"activeProjectId":null}`,
		"not json":           `<html>`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			src, _ := stubAPI(t, map[string]route{"GET /api/projects": {200, body}})
			_, err := src.FetchProjects(ctx)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}

	t.Run("server error", func(t *testing.T) {
		src, _ := stubAPI(t, map[string]route{
			"GET /api/projects": {500, `{"error":"INTERNAL_ERROR","message":"An unexpected error occurred"}`},
		})
		_, err := src.FetchProjects(ctx)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 500, se.Status)
	})
}

func TestFetchActiveProject(t *testing.T) {
	src, _ := stubAPI(t, map[string]route{"GET /api/projects/active": {200, `{"project":null}`}})
	res, err := src.FetchActiveProject(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Project)

	src, _ = stubAPI(t, map[string]route{"GET /api/projects/active": {200, `{"project":{"id":"p1"}}`}})
	_, err = src.FetchActiveProject(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestAddProject(t *testing.T) {
	ctx := context.Background()

	t.Run("sends path and name", func(t *testing.T) {
		src, sent := stubAPI(t, map[string]route{"POST /api/projects": {201, `{"project":` + demoDTO + `}`}})
		res, err := src.AddProject(ctx, "/work/demo/.beads", "Demo")
		require.NoError(t, err)
		assert.Equal(t, "p1", res.Project.ID)
		assert.JSONEq(t, `{"path":"/work/demo/.beads","name":"Demo"}`, sent("POST /api/projects"))
	})

	for _, code := range []ErrorCode{CodeInvalidPath, CodeAlreadyExists} {
		t.Run(string(code), func(t *testing.T) {
			src, _ := stubAPI(t, map[string]route{
				"POST /api/projects": {400, `{"error":"` + string(code) + `","message":"nope"}`},
			})
			_, err := src.AddProject(ctx, "/x", "")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, code, apiErr.Code)
			assert.Equal(t, "nope", apiErr.Message)
			assert.True(t, IsCode(err, code))
		})
	}

	t.Run("unrecognised code is a status error", func(t *testing.T) {
		src, _ := stubAPI(t, map[string]route{
			"POST /api/projects": {400, `{"error":"INVALID_REQUEST","message":"Path is required"}`},
		})
		_, err := src.AddProject(ctx, "", "")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 400, se.Status)
	})
}

func TestSetActiveProject(t *testing.T) {
	src, _ := stubAPI(t, map[string]route{
		"POST /api/projects/p1/activate": {200, `{"success":true}`},
		"POST /api/projects/p9/activate": {404, `{"error":"NOT_FOUND","message":"Project with ID 'p9' not found"}`},
		"POST /api/projects/p5/activate": {500, `{}`},
	})
	ctx := context.Background()

	require.NoError(t, src.SetActiveProject(ctx, "p1"))

	err := src.SetActiveProject(ctx, "p9")
	assert.True(t, IsCode(err, CodeNotFound))
	assert.Contains(t, err.Error(), "Project with ID 'p9' not found")

	var se *StatusError
	assert.True(t, errors.As(src.SetActiveProject(ctx, "p5"), &se))
}

func TestRemoveProject(t *testing.T) {
	src, _ := stubAPI(t, map[string]route{
		"DELETE /api/projects/p1": {200, `{"success":true}`},
		"DELETE /api/projects/p2": {200, `{}`},
	})
	ctx := context.Background()

	require.NoError(t, src.RemoveProject(ctx, "p1"))
	assert.ErrorIs(t, src.RemoveProject(ctx, "p2"), ErrInvalidResponse)
}

func TestValidatePath(t *testing.T) {
	src, sent := stubAPI(t, map[string]route{
		"POST /api/projects/validate-path": {200, `{"valid":false,"suggestedName":"demo"}`},
	})
	res, err := src.ValidatePath(context.Background(), "/work/demo")
	require.NoError(t, err)
	assert.False(t, *res.Valid)
	assert.Equal(t, "demo", res.SuggestedName)
	assert.JSONEq(t, `{"path":"/work/demo"}`, sent("POST /api/projects/validate-path"))
}
