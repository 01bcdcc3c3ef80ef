package content

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// TweetDeps contiene las dependencias del tweet service.
type TweetDeps struct {
	Repo core.Repository
}

type tweetService struct {
	deps TweetDeps
}

func NewTweetService(deps TweetDeps) TweetService {
	return &tweetService{deps: deps}
}

func (s *tweetService) Create(ctx context.Context, ownerID string, in dto.CreateTweetRequest) (*dto.TweetResponse, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrMissingFields
	}

	t := &core.Tweet{OwnerID: ownerID, Content: in.Content}
	if err := s.deps.Repo.CreateTweet(ctx, t); err != nil {
		logger.From(ctx).Error("tweet persist failed", logger.Err(err))
		return nil, storeErr(err)
	}
	resp := dto.ToTweetResponse(t)
	return &resp, nil
}

func (s *tweetService) ListByOwner(ctx context.Context, ownerID string) ([]dto.TweetResponse, error) {
	ts, err := s.deps.Repo.ListTweetsByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return dto.ToTweetResponses(ts), nil
}

func (s *tweetService) Update(ctx context.Context, requesterID, tweetID string, in dto.UpdateTweetRequest) (*dto.TweetResponse, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrMissingFields
	}
	if err := s.requireOwner(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}

	t, err := s.deps.Repo.UpdateTweet(ctx, tweetID, in.Content)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	resp := dto.ToTweetResponse(t)
	return &resp, nil
}

func (s *tweetService) Delete(ctx context.Context, requesterID, tweetID string) error {
	if err := s.requireOwner(ctx, requesterID, tweetID); err != nil {
		return err
	}
	if err := s.deps.Repo.DeleteTweet(ctx, tweetID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *tweetService) requireOwner(ctx context.Context, requesterID, tweetID string) error {
	t, err := s.deps.Repo.GetTweet(ctx, tweetID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if t.OwnerID != requesterID {
		return ErrForbidden
	}
	return nil
}
