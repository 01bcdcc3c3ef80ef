package auth

import (
	"context"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/security/password"
	tokens "github.com/sanikant20/videoTube-Server/internal/security/token"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Repo   core.Repository
	Issuer *jwtx.Issuer
}

type loginService struct {
	deps LoginDeps
}

func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Login = strings.TrimSpace(strings.ToLower(in.Login))
	if in.Login == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.deps.Repo.GetUserByLogin(ctx, in.Login)
	if err != nil {
		// No distinguimos "no existe" de "password mal": anti-enumeración.
		log.Debug("user lookup failed")
		return nil, ErrInvalidCredentials
	}
	log = log.With(logger.UserID(user.ID))

	if !password.Verify(in.Password, user.PasswordHash) {
		log.Debug("password check failed")
		return nil, ErrInvalidCredentials
	}

	pair, err := issuePair(ctx, s.deps.Repo, s.deps.Issuer, user)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login successful")
	return &dto.LoginResult{
		User:   dto.ToUserResponse(user),
		Tokens: *pair,
	}, nil
}

// issuePair emite access+refresh y persiste el hash del refresh nuevo,
// pisando cualquier sesión anterior: una sola sesión activa por identidad.
func issuePair(ctx context.Context, repo core.Repository, issuer *jwtx.Issuer, user *core.User) (*dto.TokenPair, error) {
	access, accessExp, err := issuer.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	hash := tokens.SHA256Base64URL(refresh)
	if err := repo.SetRefreshHash(ctx, user.ID, &hash); err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
