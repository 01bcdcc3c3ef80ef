package content

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// CommentDeps contiene las dependencias del comment service.
type CommentDeps struct {
	Repo core.Repository
}

type commentService struct {
	deps CommentDeps
}

func NewCommentService(deps CommentDeps) CommentService {
	return &commentService{deps: deps}
}

func (s *commentService) Create(ctx context.Context, ownerID, videoID string, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrMissingFields
	}

	// El FK valida igual, pero el 404 explícito da mejor mensaje que un
	// error de constraint.
	if _, err := s.deps.Repo.GetVideo(ctx, videoID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	c := &core.Comment{VideoID: videoID, OwnerID: ownerID, Content: in.Content}
	if err := s.deps.Repo.CreateComment(ctx, c); err != nil {
		logger.From(ctx).Error("comment persist failed", logger.Err(err))
		return nil, storeErr(err)
	}
	resp := dto.ToCommentResponse(c)
	return &resp, nil
}

func (s *commentService) ListByVideo(ctx context.Context, videoID string) ([]dto.CommentResponse, error) {
	cs, err := s.deps.Repo.ListCommentsByVideo(ctx, videoID)
	if err != nil {
		return nil, storeErr(err)
	}
	return dto.ToCommentResponses(cs), nil
}

func (s *commentService) Update(ctx context.Context, requesterID, commentID string, in dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrMissingFields
	}
	if err := s.requireOwner(ctx, requesterID, commentID); err != nil {
		return nil, err
	}

	c, err := s.deps.Repo.UpdateComment(ctx, commentID, in.Content)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	resp := dto.ToCommentResponse(c)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, requesterID, commentID string) error {
	if err := s.requireOwner(ctx, requesterID, commentID); err != nil {
		return err
	}
	if err := s.deps.Repo.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *commentService) requireOwner(ctx context.Context, requesterID, commentID string) error {
	c, err := s.deps.Repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if c.OwnerID != requesterID {
		return ErrForbidden
	}
	return nil
}
