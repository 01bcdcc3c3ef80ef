// Package content contiene los services de videos, comments y tweets.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// VideoService maneja el ciclo de vida de un video.
type VideoService interface {
	Publish(ctx context.Context, ownerID string, in dto.CreateVideoRequest, video, thumbnail Upload) (*dto.VideoResponse, error)
	Get(ctx context.Context, viewerID, videoID string) (*dto.VideoResponse, error)
	ListByOwner(ctx context.Context, ownerID string) ([]dto.VideoResponse, error)
	Update(ctx context.Context, requesterID, videoID string, in dto.UpdateVideoRequest) (*dto.VideoResponse, error)
	TogglePublish(ctx context.Context, requesterID, videoID string) (*dto.VideoResponse, error)
	Delete(ctx context.Context, requesterID, videoID string) error
}

// CommentService maneja comments sobre videos.
type CommentService interface {
	Create(ctx context.Context, ownerID, videoID string, in dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByVideo(ctx context.Context, videoID string) ([]dto.CommentResponse, error)
	Update(ctx context.Context, requesterID, commentID string, in dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, requesterID, commentID string) error
}

// TweetService maneja los posts cortos.
type TweetService interface {
	Create(ctx context.Context, ownerID string, in dto.CreateTweetRequest) (*dto.TweetResponse, error)
	ListByOwner(ctx context.Context, ownerID string) ([]dto.TweetResponse, error)
	Update(ctx context.Context, requesterID, tweetID string, in dto.UpdateTweetRequest) (*dto.TweetResponse, error)
	Delete(ctx context.Context, requesterID, tweetID string) error
}

// Upload es un archivo entrante ya abierto (multipart part).
type Upload struct {
	ContentType string
	Reader      io.Reader
}

var (
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrNotFound         = fmt.Errorf("resource not found")
	ErrForbidden        = fmt.Errorf("not the owner")
	ErrUploadFailed     = fmt.Errorf("media upload failed")
	ErrStoreFailed      = fmt.Errorf("store operation failed")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
)

// storeErr separa la persistencia caída del fallo genérico.
func storeErr(err error) error {
	if errors.Is(err, core.ErrUnavailable) {
		return ErrStoreUnavailable
	}
	return ErrStoreFailed
}
