// Package userspgxstore implements the usersrepo.Storer interface against
// PostgreSQL.
package userspgxstore

import (
	"bytes"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/infrastructure/postgresdb"
	"github.com/tasktide/tasktide/sdk/logger"
)

const userColumns = "user_id, name, email, profile_image_url, role, created_at, updated_at"

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context, filter usersrepo.UserFilter) ([]usersrepo.User, error) {
	buf := bytes.NewBufferString("SELECT " + userColumns + " FROM users")
	args := pgx.NamedArgs{}

	if filter.Role != nil {
		buf.WriteString(" WHERE role = @role")
		args["role"] = *filter.Role
	}

	buf.WriteString(" ORDER BY name ASC, user_id ASC")

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return users, nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}

func (s *Store) GetByIDs(ctx context.Context, userIDs []string) ([]usersrepo.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE user_id = ANY(@user_ids)`

	args := pgx.NamedArgs{
		"user_ids": userIDs,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return users, nil
}
