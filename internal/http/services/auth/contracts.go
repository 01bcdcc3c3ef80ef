// Package auth contiene los services del ciclo de vida de credenciales.
package auth

import (
	"context"
	"fmt"
	"io"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
)

// RegisterService crea cuentas nuevas.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
}

// LoginService autentica con username/email + password y abre sesión.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error)
}

// RefreshService rota el refresh token vigente por un par nuevo.
type RefreshService interface {
	Refresh(ctx context.Context, rawRefresh string) (*dto.TokenPair, error)
}

// LogoutService revoca la sesión del usuario.
type LogoutService interface {
	Logout(ctx context.Context, userID string) error
}

// ProfileService maneja el perfil de la cuenta autenticada.
type ProfileService interface {
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error
	UpdateAvatar(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
	UpdateCoverImage(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
}

// Errores de los services de auth.
var (
	ErrMissingFields      = fmt.Errorf("missing required fields")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserExists         = fmt.Errorf("username or email already taken")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrTokenIssueFailed   = fmt.Errorf("failed to issue tokens")
	ErrRefreshExpired     = fmt.Errorf("refresh token expired")
	ErrRefreshInvalid     = fmt.Errorf("refresh token invalid")
	// ErrReuseDetected: llegó un refresh con firma válida que ya no es el
	// vigente. La sesión completa queda revocada.
	ErrReuseDetected = fmt.Errorf("refresh token reuse detected")
	ErrUploadFailed  = fmt.Errorf("media upload failed")
)
