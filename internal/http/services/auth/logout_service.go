package auth

import (
	"context"
	"errors"

	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// LogoutDeps contiene las dependencias del logout service.
type LogoutDeps struct {
	Repo core.Repository
}

type logoutService struct {
	deps LogoutDeps
}

func NewLogoutService(deps LogoutDeps) LogoutService {
	return &logoutService{deps: deps}
}

// Logout limpia el hash de refresh almacenado. Idempotente: repetir el
// logout o hacerlo sin sesión activa no es error.
func (s *logoutService) Logout(ctx context.Context, userID string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.logout"),
		logger.Op("Logout"),
		logger.UserID(userID),
	)

	if err := s.deps.Repo.SetRefreshHash(ctx, userID, nil); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("logout failed", logger.Err(err))
		return err
	}
	log.Info("session revoked")
	return nil
}
