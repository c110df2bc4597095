package response

import (
	"time"

	"localmarket/internal/data/entity"
)

// SessionUser mirrors the token claims returned by login and session read
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type LoginResponse struct {
	User SessionUser `json:"user"`

	// Token is delivered via the HTTP-only cookie, not the body
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Address:   user.Address,
		Role:      user.RoleName,
		CreatedAt: user.CreatedAt,
	}
}
