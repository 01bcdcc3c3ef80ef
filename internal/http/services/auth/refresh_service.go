package auth

import (
	"context"
	"errors"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/observability/metrics"
	tokens "github.com/sanikant20/videoTube-Server/internal/security/token"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// RefreshDeps contiene las dependencias del refresh service.
type RefreshDeps struct {
	Repo   core.Repository
	Issuer *jwtx.Issuer
}

type refreshService struct {
	deps RefreshDeps
}

func NewRefreshService(deps RefreshDeps) RefreshService {
	return &refreshService{deps: deps}
}

// Refresh implementa la rotación single-use del refresh token:
//
//  1. Firma y expiración se validan stateless.
//  2. El hash del token presentado debe coincidir bit a bit con el vigente.
//  3. El reemplazo es un compare-and-swap: solo gana quien presenta el hash
//     que sigue almacenado.
//
// Un token con firma válida que ya no coincide con el vigente es evidencia
// de robo o de replay; en ese caso la sesión entera se revoca y el cliente
// legítimo tiene que volver a hacer login.
func (s *refreshService) Refresh(ctx context.Context, rawRefresh string) (*dto.TokenPair, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
		logger.Op("Refresh"),
	)

	if rawRefresh == "" {
		return nil, ErrRefreshInvalid
	}

	claims, err := s.deps.Issuer.ParseRefresh(rawRefresh)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			log.Debug("refresh expired")
			return nil, ErrRefreshExpired
		}
		log.Debug("refresh signature invalid")
		return nil, ErrRefreshInvalid
	}

	user, err := s.deps.Repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		log.Debug("user not found for refresh")
		return nil, ErrRefreshInvalid
	}
	log = log.With(logger.UserID(user.ID))

	// Sin hash almacenado no hay sesión activa: logout previo o revocación.
	if user.RefreshHash == nil || *user.RefreshHash == "" {
		log.Debug("no active session")
		return nil, ErrRefreshInvalid
	}

	presentedHash := tokens.SHA256Base64URL(rawRefresh)
	if !tokens.ConstantTimeEqual(presentedHash, *user.RefreshHash) {
		// Firma válida pero no es el token vigente: alguien ya lo rotó.
		// Revocamos la sesión para cortar a ambos portadores.
		if err := s.deps.Repo.SetRefreshHash(ctx, user.ID, nil); err != nil {
			log.Error("session revoke failed", logger.Err(err))
		}
		metrics.TokenReuseDetected.Inc()
		log.Warn("refresh token reuse detected, session revoked")
		return nil, ErrReuseDetected
	}

	access, accessExp, err := s.deps.Issuer.IssueAccess(user)
	if err != nil {
		log.Error("access issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	newRefresh, refreshExp, err := s.deps.Issuer.IssueRefresh(user.ID)
	if err != nil {
		log.Error("refresh issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	newHash := tokens.SHA256Base64URL(newRefresh)

	swapped, err := s.deps.Repo.RotateRefreshHash(ctx, user.ID, presentedHash, newHash)
	if err != nil {
		log.Error("rotation persist failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	if !swapped {
		// Perdimos la carrera contra otra rotación con el mismo token: el
		// mismo caso de reuse, solo que detectado en el CAS y no antes.
		if err := s.deps.Repo.SetRefreshHash(ctx, user.ID, nil); err != nil {
			log.Error("session revoke failed", logger.Err(err))
		}
		metrics.TokenReuseDetected.Inc()
		log.Warn("concurrent refresh rotation, session revoked")
		return nil, ErrReuseDetected
	}

	log.Info("refresh rotated")
	return &dto.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     newRefresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
