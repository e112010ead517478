// Package domain defines the Beads issue model as read from a project's
// issues.jsonl.
package domain

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrNoActiveProject = errors.New("no active project")
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// Issue is one line of issues.jsonl. Unknown fields are ignored.
type Issue struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority"`
	IssueType   string     `json:"issue_type,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

func (i *Issue) HasLabel(label string) bool {
	return slices.Contains(i.Labels, label)
}

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	Status Status
	Label  string
}

func (f Filter) Match(i *Issue) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.Label != "" && !i.HasLabel(f.Label) {
		return false
	}
	return true
}

// Label is a label name with the number of issues carrying it.
type Label struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
