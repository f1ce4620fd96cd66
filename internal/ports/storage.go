// Package ports defines the interfaces between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/edaskel/questlog/internal/domain"
)

// Store is the persistence port for the checklist collections: one user,
// a list of tasks, and a list of categories, each stored as a whole
// snapshot.
//
// Loaders treat an absent file as the bootstrap path, not an error: they
// return the collection's defaults with a nil error. A present but
// unreadable file returns the same defaults together with an error
// describing the corruption, so callers can distinguish "fresh" from
// "lost" while always receiving a usable value.
type Store interface {
	// SaveUser persists the user snapshot.
	SaveUser(ctx context.Context, user *domain.User) error

	// SaveTasks persists the whole task collection.
	SaveTasks(ctx context.Context, tasks []*domain.Task) error

	// SaveCategories persists the whole category collection.
	SaveCategories(ctx context.Context, categories []domain.Category) error

	// LoadUser returns the stored user, or a fresh default.
	LoadUser(ctx context.Context) (*domain.User, error)

	// LoadTasks returns the stored tasks, or an empty list.
	LoadTasks(ctx context.Context) ([]*domain.Task, error)

	// LoadCategories returns the stored categories, or the default set.
	LoadCategories(ctx context.Context) ([]domain.Category, error)

	// SaveAll performs all three saves unconditionally and joins any
	// failures into one error. The three writes are not atomic together.
	SaveAll(ctx context.Context, user *domain.User, tasks []*domain.Task, categories []domain.Category) error

	// LoadAll composes the three loaders, logging and absorbing any
	// corruption failures. It always returns a usable triple.
	LoadAll(ctx context.Context) (*domain.User, []*domain.Task, []domain.Category)

	// Backup copies whichever data files exist into a directory named
	// after today's date, reusing it on same-day repeats. It returns the
	// backup directory path.
	Backup(ctx context.Context) (string, error)
}

// Notifier is the desktop-notification port for progression milestones.
type Notifier interface {
	// NotifyLevelUp announces that the user reached a new level.
	NotifyLevelUp(level int) error

	// NotifyStreakRecord announces a new longest streak.
	NotifyStreakRecord(days int) error
}
