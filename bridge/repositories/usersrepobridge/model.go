package usersrepobridge

import (
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
)

// User is the bridge model for a directory entry, extended with the task
// counts the team views display next to each member.
type User struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
	Role            string `json:"role"`
	PendingTasks    int    `json:"pendingTasks"`
	InProgressTasks int    `json:"inProgressTasks"`
	CompletedTasks  int    `json:"completedTasks"`
}

// ListUsersResponse wraps the member list.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// MarshalToBridge converts a core user to the bridge model.
func MarshalToBridge(user usersrepo.User) User {
	return User{
		UserID:          user.UserID,
		Name:            user.Name,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
		Role:            user.Role,
	}
}
