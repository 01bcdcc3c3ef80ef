package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/security/password"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/util"
)

// RegisterDeps contiene las dependencias del register service.
type RegisterDeps struct {
	Repo core.Repository
}

type registerService struct {
	deps RegisterDeps
}

func NewRegisterService(deps RegisterDeps) RegisterService {
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, err
	}

	u := &core.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	}
	if err := s.deps.Repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Debug("username or email taken")
			return nil, ErrUserExists
		}
		log.Error("create user failed", logger.Err(err))
		return nil, err
	}

	log.Info("user registered", logger.UserID(u.ID), logger.Email(util.MaskEmail(u.Email)))
	resp := dto.ToUserResponse(u)
	return &resp, nil
}
