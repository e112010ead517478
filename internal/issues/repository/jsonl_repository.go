package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arttttt/Bealin/internal/issues/domain"
	projectdomain "github.com/arttttt/Bealin/internal/projects/domain"
)

// IssuesFile is the file name inside the .beads folder.
const IssuesFile = "issues.jsonl"

// beads lines can carry long descriptions
const maxLineSize = 4 << 20

// JSONLRepository reads issues straight from a project's .beads folder.
type JSONLRepository struct{}

func NewJSONLRepository() *JSONLRepository {
	return &JSONLRepository{}
}

// FindAll returns every issue of the project at root in file order.
// A missing file yields an empty list.
func (r *JSONLRepository) FindAll(ctx context.Context, root string) ([]domain.Issue, error) {
	path := filepath.Join(projectdomain.BeadsPath(root), IssuesFile)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Issue{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open issues: %w", err)
	}
	defer f.Close()

	issues := []domain.Issue{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var issue domain.Issue
		if err := json.Unmarshal(line, &issue); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", IssuesFile, n, err)
		}
		issues = append(issues, issue)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read issues: %w", err)
	}
	return issues, nil
}

// FindByID scans the file for id.
func (r *JSONLRepository) FindByID(ctx context.Context, root, id string) (*domain.Issue, error) {
	issues, err := r.FindAll(ctx, root)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		if issues[i].ID == id {
			return &issues[i], nil
		}
	}
	return nil, domain.ErrIssueNotFound
}
