// Package usersrepo provides read access to the user directory for assignee
// resolution. Users are weak references from tasks: plain identifier values
// resolved in batch for display, never embedded copies.
package usersrepo

import (
	"context"
	"fmt"

	"github.com/tasktide/tasktide/sdk/logger"
)

// Storer defines the data storage interface for User.
type Storer interface {
	List(ctx context.Context, filter UserFilter) ([]User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByIDs(ctx context.Context, userIDs []string) ([]User, error)
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns users matching the filter.
func (r *Repository) List(ctx context.Context, filter UserFilter) ([]User, error) {
	users, err := r.storer.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByID returns a single user.
func (r *Repository) GetByID(ctx context.Context, userID string) (User, error) {
	user, err := r.storer.GetByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// GetByIDs resolves a batch of user ids, deduplicating the input. Ids that
// do not resolve are silently absent from the result: a task may reference a
// user that has since been removed, and resolution must not fail the whole
// read.
func (r *Repository) GetByIDs(ctx context.Context, userIDs []string) ([]User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(userIDs))
	unique := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := r.storer.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	return users, nil
}
