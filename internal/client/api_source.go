package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DefaultTimeout = 10 * time.Second

// ProjectSource is the raw project API, one method per route.
type ProjectSource interface {
	FetchProjects(ctx context.Context) (*ProjectsResponse, error)
	FetchActiveProject(ctx context.Context) (*ActiveProjectResponse, error)
	AddProject(ctx context.Context, path, name string) (*AddProjectResponse, error)
	RemoveProject(ctx context.Context, id string) error
	SetActiveProject(ctx context.Context, id string) error
	ValidatePath(ctx context.Context, path string) (*ValidatePathResponse, error)
}

// ProjectAPISource talks to the Bealin API over HTTP.
type ProjectAPISource struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

// NewProjectAPISource targets baseURL, e.g. "http://localhost:3000".
func NewProjectAPISource(baseURL string, httpClient *http.Client) *ProjectAPISource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &ProjectAPISource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// classifier turns a recognised error body into an *APIError, or returns nil.
type classifier func(status int, body errorBody) *APIError

func byCode(codes ...ErrorCode) classifier {
	return func(_ int, body errorBody) *APIError {
		for _, c := range codes {
			if body.Error == string(c) {
				return &APIError{Code: c, Message: body.Message}
			}
		}
		return nil
	}
}

func notFoundOn404(status int, body errorBody) *APIError {
	if status != http.StatusNotFound {
		return nil
	}
	return &APIError{Code: CodeNotFound, Message: body.Message}
}

func (s *ProjectAPISource) FetchProjects(ctx context.Context) (*ProjectsResponse, error) {
	var out ProjectsResponse
	if err := s.do(ctx, "fetch projects", http.MethodGet, "/api/projects", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectAPISource) FetchActiveProject(ctx context.Context) (*ActiveProjectResponse, error) {
	var out ActiveProjectResponse
	if err := s.do(ctx, "fetch active project", http.MethodGet, "/api/projects/active", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddProject registers path, which may be a .beads folder or a project root.
// An empty name lets the server pick one.
func (s *ProjectAPISource) AddProject(ctx context.Context, path, name string) (*AddProjectResponse, error) {
	body := map[string]string{"path": path}
	if name != "" {
		body["name"] = name
	}
	var out AddProjectResponse
	err := s.do(ctx, "add project", http.MethodPost, "/api/projects", body, &out,
		byCode(CodeInvalidPath, CodeAlreadyExists))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectAPISource) RemoveProject(ctx context.Context, id string) error {
	var out SuccessResponse
	return s.do(ctx, "remove project", http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, &out, nil)
}

func (s *ProjectAPISource) SetActiveProject(ctx context.Context, id string) error {
	var out SuccessResponse
	return s.do(ctx, "activate project", http.MethodPost, "/api/projects/"+url.PathEscape(id)+"/activate", nil, &out,
		notFoundOn404)
}

func (s *ProjectAPISource) ValidatePath(ctx context.Context, path string) (*ValidatePathResponse, error) {
	var out ValidatePathResponse
	err := s.do(ctx, "validate path", http.MethodPost, "/api/projects/validate-path", map[string]string{"path": path}, &out, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProjectAPISource) do(ctx context.Context, op, method, path string, in, out any, classify classifier) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if classify != nil {
			var eb errorBody
			if json.Unmarshal(raw, &eb) == nil {
				if apiErr := classify(resp.StatusCode, eb); apiErr != nil {
					return apiErr
				}
			}
		}
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, err)
	}
	if err := s.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, verrs)
		}
		return fmt.Errorf("%s: validate body: %w", op, err)
	}
	return nil
}
