package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/issues/domain"
	issuehttp "github.com/arttttt/Bealin/internal/issues/http"
	"github.com/arttttt/Bealin/internal/issues/usecase"
	projectdomain "github.com/arttttt/Bealin/internal/projects/domain"
)

type activeStub struct {
	project *projectdomain.Project
	err     error
}

func (s activeStub) GetActiveProject(context.Context) (*projectdomain.Project, error) {
	return s.project, s.err
}

type repoStub struct {
	issues []domain.Issue
	err    error
}

func (r repoStub) FindAll(context.Context, string) ([]domain.Issue, error) {
	return r.issues, r.err
}

func (r repoStub) FindByID(_ context.Context, _, id string) (*domain.Issue, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.issues {
		if r.issues[i].ID == id {
			return &r.issues[i], nil
		}
	}
	return nil, domain.ErrIssueNotFound
}

func serve(t *testing.T, source activeStub, repo repoStub, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	issuehttp.New(usecase.NewSet(source, repo), zap.NewNop()).Register(r.Group("/api"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var (
	demo   = activeStub{project: &projectdomain.Project{ID: "p1", Path: "/work/demo"}}
	issues = repoStub{issues: []domain.Issue{
		{ID: "bd-1", Title: "One", Status: domain.StatusOpen, Labels: []string{"ui"}},
		{ID: "bd-2", Title: "Two", Status: domain.StatusClosed},
	}}
)

func TestListIssuesRoute(t *testing.T) {
	rec := serve(t, demo, issues, "/api/issues?status=closed")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Issues []domain.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "bd-2", body.Issues[0].ID)
}

func TestGetIssueRoute(t *testing.T) {
	rec := serve(t, demo, issues, "/api/issues/bd-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"One"`)

	rec = serve(t, demo, issues, "/api/issues/bd-9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"NOT_FOUND","message":"Issue with ID 'bd-9' not found"}`, rec.Body.String())
}

func TestLabelsRoute(t *testing.T) {
	rec := serve(t, demo, issues, "/api/labels")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"labels":[{"name":"ui","count":1}]}`, rec.Body.String())
}

func TestIssueRoutesErrors(t *testing.T) {
	rec := serve(t, activeStub{}, issues, "/api/issues")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_ACTIVE_PROJECT")

	rec = serve(t, demo, repoStub{err: errors.New("bad jsonl")}, "/api/labels")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bad jsonl")
}
