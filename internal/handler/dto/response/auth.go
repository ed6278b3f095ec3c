package response

import (
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		User:        UserResponse{ID: r.UserID, Role: r.Role.String()},
	}
}

func FromAuthorizedUser(v *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{ID: v.ID, Email: v.Email, Role: v.Role}
}
