// Package storage provides the JSON file implementation of the storage
// port. Each collection lives in its own human-readable document inside
// the data directory.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/ports"
)

const (
	userFile       = "user.json"
	tasksFile      = "tasks.json"
	categoriesFile = "categories.json"

	dataDirPerm  os.FileMode = 0755
	dataFilePerm os.FileMode = 0644
)

// jsonStore implements ports.Store over a directory of JSON documents.
type jsonStore struct {
	dataDir string
	logger  *log.Logger
}

// Ensure jsonStore implements ports.Store.
var _ ports.Store = (*jsonStore)(nil)

// New creates a JSON file store rooted at dataDir, creating the directory
// if needed.
func New(dataDir string) (ports.Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &jsonStore{
		dataDir: dataDir,
		logger:  log.New(os.Stderr, "[storage] ", log.LstdFlags),
	}, nil
}

func (s *jsonStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// writeJSON marshals v with two-space indentation and writes it to the
// named data file.
func (s *jsonStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, dataFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// SaveUser persists the user snapshot to user.json.
func (s *jsonStore) SaveUser(ctx context.Context, user *domain.User) error {
	if err := s.writeJSON(userFile, user); err != nil {
		s.logger.Printf("failed to save user data: %v", err)
		return err
	}
	s.logger.Printf("user data saved to %s", s.path(userFile))
	return nil
}

// SaveTasks persists the task collection to tasks.json.
func (s *jsonStore) SaveTasks(ctx context.Context, tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	if err := s.writeJSON(tasksFile, tasks); err != nil {
		s.logger.Printf("failed to save tasks data: %v", err)
		return err
	}
	s.logger.Printf("tasks data saved to %s (%d tasks)", s.path(tasksFile), len(tasks))
	return nil
}

// SaveCategories persists the category collection to categories.json.
func (s *jsonStore) SaveCategories(ctx context.Context, categories []domain.Category) error {
	if categories == nil {
		categories = []domain.Category{}
	}
	if err := s.writeJSON(categoriesFile, categories); err != nil {
		s.logger.Printf("failed to save categories data: %v", err)
		return err
	}
	s.logger.Printf("categories data saved to %s (%d categories)", s.path(categoriesFile), len(categories))
	return nil
}

// LoadUser returns the stored user. A missing file yields a fresh user
// with a nil error; a corrupt file yields a fresh user plus the decode
// error.
func (s *jsonStore) LoadUser(ctx context.Context) (*domain.User, error) {
	data, err := os.ReadFile(s.path(userFile))
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("no user data file found, starting fresh")
		return domain.NewUser(), nil
	}
	if err != nil {
		s.logger.Printf("failed to load user data: %v", err)
		return domain.NewUser(), fmt.Errorf("failed to read %s: %w", userFile, err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Printf("failed to load user data: %v", err)
		return domain.NewUser(), fmt.Errorf("failed to decode %s: %w", userFile, err)
	}

	s.logger.Printf("user data loaded from %s", s.path(userFile))
	return &user, nil
}

// LoadTasks returns the stored tasks. A missing file yields an empty
// list with a nil error; a corrupt file or record yields an empty list
// plus the decode error.
func (s *jsonStore) LoadTasks(ctx context.Context) ([]*domain.Task, error) {
	data, err := os.ReadFile(s.path(tasksFile))
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("no tasks data file found, returning empty list")
		return []*domain.Task{}, nil
	}
	if err != nil {
		s.logger.Printf("failed to load tasks data: %v", err)
		return []*domain.Task{}, fmt.Errorf("failed to read %s: %w", tasksFile, err)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Printf("failed to load tasks data: %v", err)
		return []*domain.Task{}, fmt.Errorf("failed to decode %s: %w", tasksFile, err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	s.logger.Printf("tasks data loaded from %s (%d tasks)", s.path(tasksFile), len(tasks))
	return tasks, nil
}

// LoadCategories returns the stored categories. Both a missing and a
// corrupt file yield the default category set; only corruption carries
// an error.
func (s *jsonStore) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	data, err := os.ReadFile(s.path(categoriesFile))
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("no categories data file found, using defaults")
		return domain.DefaultCategories(), nil
	}
	if err != nil {
		s.logger.Printf("failed to load categories data: %v", err)
		return domain.DefaultCategories(), fmt.Errorf("failed to read %s: %w", categoriesFile, err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		s.logger.Printf("failed to load categories data: %v", err)
		return domain.DefaultCategories(), fmt.Errorf("failed to decode %s: %w", categoriesFile, err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	s.logger.Printf("categories data loaded from %s (%d categories)", s.path(categoriesFile), len(categories))
	return categories, nil
}

// SaveAll performs all three saves unconditionally. A failure in one
// file does not prevent the others from being written; any errors are
// joined. The three writes are not atomic together.
func (s *jsonStore) SaveAll(ctx context.Context, user *domain.User, tasks []*domain.Task, categories []domain.Category) error {
	return errors.Join(
		s.SaveUser(ctx, user),
		s.SaveTasks(ctx, tasks),
		s.SaveCategories(ctx, categories),
	)
}

// LoadAll composes the three loaders. Corruption has already been logged
// and collapsed to defaults by the individual loaders, so the returned
// triple is always usable.
func (s *jsonStore) LoadAll(ctx context.Context) (*domain.User, []*domain.Task, []domain.Category) {
	user, _ := s.LoadUser(ctx)
	tasks, _ := s.LoadTasks(ctx)
	categories, _ := s.LoadCategories(ctx)
	return user, tasks, categories
}

// Backup copies whichever data files exist into backup_<today>/ inside
// the data directory. Repeated backups on the same day overwrite into
// the same directory.
func (s *jsonStore) Backup(ctx context.Context) (string, error) {
	backupDir := filepath.Join(s.dataDir, "backup_"+domain.Today().String())
	if err := os.MkdirAll(backupDir, dataDirPerm); err != nil {
		s.logger.Printf("failed to backup data: %v", err)
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range []string{userFile, tasksFile, categoriesFile} {
		src := s.path(name)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := copyFile(src, filepath.Join(backupDir, name)); err != nil {
			s.logger.Printf("failed to backup data: %v", err)
			return "", err
		}
	}

	s.logger.Printf("data backed up to %s", backupDir)
	return backupDir, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, dataFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
