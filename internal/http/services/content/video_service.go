package content

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/media"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// VideoDeps contiene las dependencias del video service.
type VideoDeps struct {
	Repo     core.Repository
	Uploader media.Uploader
}

type videoService struct {
	deps VideoDeps
}

func NewVideoService(deps VideoDeps) VideoService {
	return &videoService{deps: deps}
}

// Publish sube el archivo y el thumbnail al object storage y luego persiste
// la fila. Si el insert falla intentamos limpiar los objetos subidos.
func (s *videoService) Publish(ctx context.Context, ownerID string, in dto.CreateVideoRequest, video, thumbnail Upload) (*dto.VideoResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("content.video"),
		logger.Op("Publish"),
		logger.UserID(ownerID),
	)

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || video.Reader == nil {
		return nil, ErrMissingFields
	}

	videoKey, videoURL, err := s.deps.Uploader.Upload(ctx, "videos", video.ContentType, video.Reader)
	if err != nil {
		log.Error("video upload failed", logger.Err(err))
		return nil, ErrUploadFailed
	}

	var thumbKey, thumbURL string
	if thumbnail.Reader != nil {
		thumbKey, thumbURL, err = s.deps.Uploader.Upload(ctx, "thumbnails", thumbnail.ContentType, thumbnail.Reader)
		if err != nil {
			log.Error("thumbnail upload failed", logger.Err(err))
			_ = s.deps.Uploader.Delete(ctx, videoKey)
			return nil, ErrUploadFailed
		}
	}

	v := &core.Video{
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		Duration:     in.Duration,
		Published:    true,
	}
	if err := s.deps.Repo.CreateVideo(ctx, v); err != nil {
		log.Error("video persist failed", logger.Err(err))
		_ = s.deps.Uploader.Delete(ctx, videoKey)
		_ = s.deps.Uploader.Delete(ctx, thumbKey)
		return nil, storeErr(err)
	}

	log.Info("video published", logger.VideoID(v.ID))
	resp := dto.ToVideoResponse(v)
	return &resp, nil
}

// Get devuelve el video e incrementa el view count. Con viewer autenticado
// también registra el video en su watch history.
func (s *videoService) Get(ctx context.Context, viewerID, videoID string) (*dto.VideoResponse, error) {
	v, err := s.deps.Repo.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	if n, err := s.deps.Repo.IncrementViewCount(ctx, videoID); err == nil {
		v.ViewCount = n
	}
	if viewerID != "" {
		// Best effort: perder una entrada de watch history no rompe el GET.
		if err := s.deps.Repo.AppendWatchHistory(ctx, viewerID, videoID); err != nil {
			logger.From(ctx).Debug("watch history append failed", logger.Err(err))
		}
	}

	resp := dto.ToVideoResponse(v)
	return &resp, nil
}

func (s *videoService) ListByOwner(ctx context.Context, ownerID string) ([]dto.VideoResponse, error) {
	vs, err := s.deps.Repo.ListVideosByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return dto.ToVideoResponses(vs), nil
}

func (s *videoService) Update(ctx context.Context, requesterID, videoID string, in dto.UpdateVideoRequest) (*dto.VideoResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, ErrMissingFields
	}
	if err := s.requireOwner(ctx, requesterID, videoID); err != nil {
		return nil, err
	}

	v, err := s.deps.Repo.UpdateVideo(ctx, videoID, in.Title, in.Description)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	resp := dto.ToVideoResponse(v)
	return &resp, nil
}

func (s *videoService) TogglePublish(ctx context.Context, requesterID, videoID string) (*dto.VideoResponse, error) {
	v, err := s.deps.Repo.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if v.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	v, err = s.deps.Repo.SetVideoPublished(ctx, videoID, !v.Published)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := dto.ToVideoResponse(v)
	return &resp, nil
}

func (s *videoService) Delete(ctx context.Context, requesterID, videoID string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("content.video"),
		logger.Op("Delete"),
		logger.VideoID(videoID),
	)

	if err := s.requireOwner(ctx, requesterID, videoID); err != nil {
		return err
	}
	if err := s.deps.Repo.DeleteVideo(ctx, videoID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("video delete failed", logger.Err(err))
		return storeErr(err)
	}
	log.Info("video deleted")
	return nil
}

func (s *videoService) requireOwner(ctx context.Context, requesterID, videoID string) error {
	v, err := s.deps.Repo.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if v.OwnerID != requesterID {
		return ErrForbidden
	}
	return nil
}
