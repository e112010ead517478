package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

// Store loads and saves the app config document.
type Store interface {
	Load(ctx context.Context) (*domain.AppConfig, error)
	Save(ctx context.Context, cfg *domain.AppConfig) error
}

// ConfigService owns the project list and the active-project pointer.
// Mutations are serialized; each one is a load-modify-save against the store.
type ConfigService struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
	newID func() string
}

// NewConfigService creates a ConfigService over store.
func NewConfigService(store Store) *ConfigService {
	return &ConfigService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// AddProject registers the project rooted at root and makes it active.
// Returns domain.ErrPathNotFound when root is not absolute or has no .beads
// directory and domain.ErrProjectExists when root is already registered.
func (s *ConfigService) AddProject(ctx context.Context, root, name string) (*domain.Project, error) {
	root, ok := cleanRoot(root)
	if !ok || !isDir(filepath.Join(root, domain.BeadsDir)) {
		return nil, fmt.Errorf("%q: %w", root, domain.ErrPathNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.FindByPath(root) >= 0 {
		return nil, fmt.Errorf("%s: %w", root, domain.ErrProjectExists)
	}

	if name == "" {
		name = filepath.Base(root)
	}
	p := domain.Project{
		ID:      s.newID(),
		Name:    name,
		Path:    root,
		AddedAt: s.now(),
	}
	cfg.Projects = append(cfg.Projects, p)
	cfg.ActiveProjectID = p.ID

	if err := s.store.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProjects returns all projects in registration order.
func (s *ConfigService) GetProjects(ctx context.Context) ([]domain.Project, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Projects, nil
}

// GetActiveProject returns the active project, or nil if there is none.
func (s *ConfigService) GetActiveProject(ctx context.Context) (*domain.Project, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Active(), nil
}

// SetActiveProject moves the active pointer. Unknown ids return
// domain.ErrProjectNotFound.
func (s *ConfigService) SetActiveProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if cfg.FindByID(id) < 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrProjectNotFound)
	}
	if cfg.ActiveProjectID == id {
		return nil
	}
	cfg.ActiveProjectID = id
	return s.store.Save(ctx, cfg)
}

// RemoveProject drops the project from the list. Files on disk are not
// touched. Removing an unknown id is a no-op. When the active project is
// removed the first remaining project takes over, if any.
func (s *ConfigService) RemoveProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	i := cfg.FindByID(id)
	if i < 0 {
		return nil
	}

	cfg.Projects = append(cfg.Projects[:i], cfg.Projects[i+1:]...)
	if cfg.ActiveProjectID == id {
		cfg.ActiveProjectID = ""
		if len(cfg.Projects) > 0 {
			cfg.ActiveProjectID = cfg.Projects[0].ID
		}
	}
	return s.store.Save(ctx, cfg)
}

// ValidatePath checks whether path (a .beads folder or a project root)
// points at a Beads project and suggests a display name for it.
func (s *ConfigService) ValidatePath(path string) domain.ValidatePathResult {
	root, ok := cleanRoot(domain.ProjectRoot(path))
	res := domain.ValidatePathResult{Valid: ok && isDir(filepath.Join(root, domain.BeadsDir))}
	if root != "" {
		res.SuggestedName = filepath.Base(root)
	}
	return res
}

func (s *ConfigService) load(ctx context.Context) (*domain.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Clone(), nil
}

// cleanRoot normalizes root and reports whether it is absolute. Relative
// roots would resolve against the server's working directory.
func cleanRoot(root string) (string, bool) {
	if root == "" {
		return "", false
	}
	root = filepath.Clean(root)
	return root, filepath.IsAbs(root)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
