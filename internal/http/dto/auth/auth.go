// Package auth define los DTOs del flujo de credenciales.
package auth

import (
	"time"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// Username o email; cualquiera de los dos identifica la cuenta.
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	// Opcional: el refresh también puede llegar por cookie.
	RefreshToken string `json:"refresh_token,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// TokenPair es el resultado de login y refresh: access stateless + refresh
// rotativo, ambos con su expiración.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type LoginResult struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	CoverImageURL   string    `json:"cover_image_url,omitempty"`
	SubscriberCount int64     `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToUserResponse(u *core.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		AvatarURL:       u.AvatarURL,
		CoverImageURL:   u.CoverImageURL,
		SubscriberCount: u.SubscriberCount,
		CreatedAt:       u.CreatedAt,
	}
}
