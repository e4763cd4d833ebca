package usersrepo_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/sdk/logger"
)

type fakeStorer struct {
	users map[string]usersrepo.User

	// lastBatch records the ids handed to GetByIDs.
	lastBatch []string
}

func (f *fakeStorer) List(ctx context.Context, filter usersrepo.UserFilter) ([]usersrepo.User, error) {
	var out []usersrepo.User
	for _, user := range f.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeStorer) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeStorer) GetByIDs(ctx context.Context, userIDs []string) ([]usersrepo.User, error) {
	f.lastBatch = userIDs

	var out []usersrepo.User
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func newTestRepository() (*usersrepo.Repository, *fakeStorer) {
	storer := &fakeStorer{users: map[string]usersrepo.User{
		"u1": {UserID: "u1", Name: "Ada", Email: "ada@example.com", Role: "member"},
		"u2": {UserID: "u2", Name: "Brin", Email: "brin@example.com", Role: "member"},
		"u3": {UserID: "u3", Name: "Cleo", Email: "cleo@example.com", Role: "admin"},
	}}
	return usersrepo.NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), storer), storer
}

func TestGetByIDs_Dedupes(t *testing.T) {
	repo, storer := newTestRepository()

	users, err := repo.GetByIDs(context.Background(), []string{"u1", "u2", "u1", "u2", "u1"})
	require.NoError(t, err)

	assert.Len(t, users, 2)
	assert.Equal(t, []string{"u1", "u2"}, storer.lastBatch)
}

func TestGetByIDs_MissingIDsSilentlyAbsent(t *testing.T) {
	repo, _ := newTestRepository()

	users, err := repo.GetByIDs(context.Background(), []string{"u1", "gone"})
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].UserID)
}

func TestGetByIDs_EmptyInput(t *testing.T) {
	repo, storer := newTestRepository()

	users, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, users)
	assert.Nil(t, storer.lastBatch, "no query for an empty batch")
}

func TestList_RoleFilter(t *testing.T) {
	repo, _ := newTestRepository()

	role := "member"
	users, err := repo.List(context.Background(), usersrepo.UserFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
