// Package channel arma la vista pública de un canal y las listas del
// espectador (watch history, videos likeados).
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/cache"
	channeldto "github.com/sanikant20/videoTube-Server/internal/http/dto/channel"
	contentdto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

type Service interface {
	// Profile arma el perfil público del canal. Con viewerID no vacío
	// incluye la relación de suscripción del espectador.
	Profile(ctx context.Context, username, viewerID string) (*channeldto.Profile, error)

	// WatchHistory lista los videos vistos por el usuario, más reciente
	// primero.
	WatchHistory(ctx context.Context, userID string) ([]contentdto.VideoResponse, error)

	// LikedVideos lista los videos con like del usuario.
	LikedVideos(ctx context.Context, userID string) ([]contentdto.VideoResponse, error)
}

var (
	ErrChannelNotFound  = fmt.Errorf("channel not found")
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

// Deps contiene las dependencias del channel service.
type Deps struct {
	Repo  core.Repository
	Cache cache.Client
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// profileTTL acota la vida de un perfil cacheado; los toggles de suscripción
// lo invalidan antes si llegan.
const profileTTL = 30 * time.Second

// ProfileCacheKey es la key bajo la que se cachea el perfil público del
// canal. El toggle de suscripción la borra al commitear.
func ProfileCacheKey(username string) string {
	return "channel:" + strings.ToLower(username)
}

// cachedProfile es la parte del perfil independiente del espectador.
type cachedProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	AvatarURL       string `json:"avatar_url"`
	CoverImageURL   string `json:"cover_image_url"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
}

func (s *service) Profile(ctx context.Context, username, viewerID string) (*channeldto.Profile, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrChannelNotFound
	}

	base, err := s.baseProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	p := &channeldto.Profile{
		ID:              base.ID,
		Username:        base.Username,
		FullName:        base.FullName,
		AvatarURL:       base.AvatarURL,
		CoverImageURL:   base.CoverImageURL,
		SubscriberCount: base.SubscriberCount,
		VideoCount:      base.VideoCount,
	}

	// La relación con el espectador nunca se cachea.
	if viewerID != "" && viewerID != base.ID {
		engaged, err := s.deps.Repo.IsEngaged(ctx, viewerID, core.Target{Type: core.TargetChannel, ID: base.ID})
		if err == nil {
			p.IsSubscribed = engaged
		}
	}
	return p, nil
}

func (s *service) baseProfile(ctx context.Context, username string) (*cachedProfile, error) {
	cacheKey := ProfileCacheKey(username)

	if s.deps.Cache != nil {
		if b, err := s.deps.Cache.Get(ctx, cacheKey); err == nil {
			var cp cachedProfile
			if json.Unmarshal(b, &cp) == nil {
				return &cp, nil
			}
		}
	}

	user, err := s.deps.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, storeErr(err)
	}
	videoCount, err := s.deps.Repo.CountVideosByOwner(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	cp := &cachedProfile{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		AvatarURL:       user.AvatarURL,
		CoverImageURL:   user.CoverImageURL,
		SubscriberCount: user.SubscriberCount,
		VideoCount:      videoCount,
	}
	if s.deps.Cache != nil {
		if b, err := json.Marshal(cp); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, b, profileTTL)
		}
	}
	return cp, nil
}

func (s *service) WatchHistory(ctx context.Context, userID string) ([]contentdto.VideoResponse, error) {
	user, err := s.deps.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, storeErr(err)
	}
	return s.videosInOrder(ctx, reversed(user.WatchHistory))
}

func (s *service) LikedVideos(ctx context.Context, userID string) ([]contentdto.VideoResponse, error) {
	ids, err := s.deps.Repo.ListEngagedVideoIDs(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.videosInOrder(ctx, ids)
}

// videosInOrder resuelve los videos y los devuelve en el orden de ids.
func (s *service) videosInOrder(ctx context.Context, ids []string) ([]contentdto.VideoResponse, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vs, err := s.deps.Repo.ListVideosByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}
	byID := make(map[string]*core.Video, len(vs))
	for i := range vs {
		byID[vs[i].ID] = &vs[i]
	}
	out := make([]contentdto.VideoResponse, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, contentdto.ToVideoResponse(v))
		}
	}
	return out, nil
}

func reversed(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[len(ss)-1-i] = s
	}
	return out
}
