package auth

import (
	"context"
	"errors"
	"io"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	"github.com/sanikant20/videoTube-Server/internal/media"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/security/password"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// ProfileDeps contiene las dependencias del profile service.
type ProfileDeps struct {
	Repo     core.Repository
	Uploader media.Uploader
}

type profileService struct {
	deps ProfileDeps
}

func NewProfileService(deps ProfileDeps) ProfileService {
	return &profileService{deps: deps}
}

func (s *profileService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.deps.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.profile"),
		logger.Op("UpdateProfile"),
		logger.UserID(userID),
	)

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.FullName == "" || in.Email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.deps.Repo.UpdateProfile(ctx, userID, in.FullName, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrUserExists
		}
		log.Error("profile update failed", logger.Err(err))
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *profileService) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.profile"),
		logger.Op("ChangePassword"),
		logger.UserID(userID),
	)

	if in.OldPassword == "" || in.NewPassword == "" {
		return ErrMissingFields
	}

	user, err := s.deps.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !password.Verify(in.OldPassword, user.PasswordHash) {
		log.Debug("old password check failed")
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return err
	}
	if err := s.deps.Repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		log.Error("password update failed", logger.Err(err))
		return err
	}
	log.Info("password changed")
	return nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	return s.uploadImage(ctx, userID, "avatars", contentType, r, s.deps.Repo.UpdateAvatar)
}

func (s *profileService) UpdateCoverImage(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	return s.uploadImage(ctx, userID, "covers", contentType, r, s.deps.Repo.UpdateCoverImage)
}

func (s *profileService) uploadImage(ctx context.Context, userID, folder, contentType string, r io.Reader, persist func(context.Context, string, string) error) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.profile"),
		logger.Op("uploadImage"),
		logger.UserID(userID),
	)

	_, url, err := s.deps.Uploader.Upload(ctx, folder, contentType, r)
	if err != nil {
		log.Error("media upload failed", logger.Err(err))
		return "", ErrUploadFailed
	}
	if err := persist(ctx, userID, url); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", ErrUserNotFound
		}
		log.Error("image url persist failed", logger.Err(err))
		return "", err
	}
	return url, nil
}
