package usersrepo

import "time"

// User is a directory entry owned by the identity collaborator. This service
// reads it to resolve assignee references and build report feeds; it never
// creates or mutates users.
type User struct {
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	ProfileImageURL string    `db:"profile_image_url"`
	Role            string    `db:"role"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// UserFilter holds the available fields a query can be filtered on.
type UserFilter struct {
	Role *string
}
