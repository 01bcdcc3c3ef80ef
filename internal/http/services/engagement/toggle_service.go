package engagement

import (
	"context"
	"errors"

	"github.com/sanikant20/videoTube-Server/internal/cache"
	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/engagement"
	channelsvc "github.com/sanikant20/videoTube-Server/internal/http/services/channel"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/observability/metrics"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// Deps contiene las dependencias del engagement service.
type Deps struct {
	Repo core.Repository

	// Cache es opcional; con cache presente, el toggle de suscripción
	// invalida el perfil de canal cacheado al commitear.
	Cache cache.Client
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// toggleRetries acota el reintento cuando dos toggles del mismo par corren
// cabeza a cabeza y el delete del perdedor no encuentra fila.
const toggleRetries = 3

// Toggle decide la rama por el outcome etiquetado del insert, nunca por un
// existence-check previo. Registro y contador se mueven juntos dentro de la
// transacción: cada llamada que commitea produce exactamente un flip neto.
func (s *service) Toggle(ctx context.Context, actorID string, target core.Target) (*dto.ToggleResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("engagement"),
		logger.Op("Toggle"),
		logger.UserID(actorID),
		logger.TargetType(string(target.Type)),
		logger.TargetID(target.ID),
	)

	if !target.Type.Valid() || target.ID == "" {
		return nil, ErrInvalidTarget
	}
	if target.Type == core.TargetChannel && target.ID == actorID {
		return nil, ErrSelfTarget
	}

	exists, err := s.deps.Repo.TargetExists(ctx, target)
	if err != nil {
		log.Error("target lookup failed", logger.Err(err))
		return nil, storeErr(err)
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	for attempt := 0; attempt < toggleRetries; attempt++ {
		resp, retry, err := s.toggleOnce(ctx, actorID, target)
		if err != nil {
			log.Error("toggle failed", logger.Err(err))
			return nil, storeErr(err)
		}
		if retry {
			continue
		}
		result := "off"
		if resp.Engaged {
			result = "on"
		}
		metrics.EngagementToggles.WithLabelValues(string(target.Type), result).Inc()
		if target.Type == core.TargetChannel {
			s.invalidateChannelProfile(ctx, target.ID)
		}
		log.Debug("toggle applied")
		return resp, nil
	}

	log.Error("toggle retries exhausted")
	return nil, ErrStoreFailed
}

// invalidateChannelProfile borra el perfil cacheado del canal cuyo
// subscriber count acaba de moverse. Best effort: sin cache o con el canal
// ya borrado no hay nada que invalidar.
func (s *service) invalidateChannelProfile(ctx context.Context, channelID string) {
	if s.deps.Cache == nil {
		return
	}
	u, err := s.deps.Repo.GetUserByID(ctx, channelID)
	if err != nil {
		return
	}
	_ = s.deps.Cache.Delete(ctx, channelsvc.ProfileCacheKey(u.Username))
}

// toggleOnce ejecuta un intento de toggle en su propia transacción.
// retry=true significa que el insert vio el registro pero el delete no lo
// encontró: otro toggle lo borró en el medio y hay que decidir de nuevo.
func (s *service) toggleOnce(ctx context.Context, actorID string, target core.Target) (resp *dto.ToggleResponse, retry bool, err error) {
	tx, err := s.deps.Repo.BeginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if err != nil || retry {
			_ = tx.Rollback(ctx)
		}
	}()

	outcome, err := s.deps.Repo.InsertEngagement(ctx, tx, &core.Engagement{
		ActorID: actorID,
		Target:  target,
	})
	if err != nil {
		return nil, false, err
	}

	switch outcome {
	case core.Inserted:
		count, err := s.deps.Repo.IncrementCounter(ctx, tx, target)
		if err != nil {
			return nil, false, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, err
		}
		return &dto.ToggleResponse{Engaged: true, Count: count}, false, nil

	case core.AlreadyPresent:
		deleted, err := s.deps.Repo.DeleteEngagement(ctx, tx, actorID, target)
		if err != nil {
			return nil, false, err
		}
		if !deleted {
			return nil, true, nil
		}
		count, err := s.deps.Repo.DecrementCounter(ctx, tx, target)
		if err != nil {
			return nil, false, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, err
		}
		return &dto.ToggleResponse{Engaged: false, Count: count}, false, nil

	default:
		return nil, false, errors.New("unknown insert outcome")
	}
}

func (s *service) Status(ctx context.Context, actorID string, target core.Target) (*dto.StatusResponse, error) {
	if !target.Type.Valid() || target.ID == "" {
		return nil, ErrInvalidTarget
	}
	engaged, err := s.deps.Repo.IsEngaged(ctx, actorID, target)
	if err != nil {
		return nil, storeErr(err)
	}
	return &dto.StatusResponse{Engaged: engaged}, nil
}

func (s *service) ListEngagedVideos(ctx context.Context, actorID string) ([]string, error) {
	ids, err := s.deps.Repo.ListEngagedVideoIDs(ctx, actorID)
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// Reconcile pisa el contador con el COUNT del ledger y reporta el drift
// corregido. Seguro de correr en caliente: el update es un solo statement.
func (s *service) Reconcile(ctx context.Context, target core.Target) (*dto.ReconcileResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("engagement"),
		logger.Op("Reconcile"),
		logger.TargetType(string(target.Type)),
		logger.TargetID(target.ID),
	)

	if !target.Type.Valid() || target.ID == "" {
		return nil, ErrInvalidTarget
	}

	before, err := s.counterValue(ctx, target)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, storeErr(err)
	}

	after, err := s.deps.Repo.ReconcileCounter(ctx, target)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrTargetNotFound
		}
		log.Error("reconcile failed", logger.Err(err))
		return nil, storeErr(err)
	}

	drift := after - before
	driftLabel := "none"
	if drift != 0 {
		driftLabel = "corrected"
		log.Warn("counter drift corrected",
			logger.CounterBefore(before),
			logger.CounterAfter(after),
		)
	}
	metrics.CounterReconciliations.WithLabelValues(string(target.Type), driftLabel).Inc()

	return &dto.ReconcileResponse{
		TargetType: string(target.Type),
		TargetID:   target.ID,
		Before:     before,
		After:      after,
		Drift:      drift,
	}, nil
}

// counterValue lee el valor denormalizado actual del contador del target.
func (s *service) counterValue(ctx context.Context, target core.Target) (int64, error) {
	switch target.Type {
	case core.TargetVideo:
		v, err := s.deps.Repo.GetVideo(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return v.LikeCount, nil
	case core.TargetComment:
		c, err := s.deps.Repo.GetComment(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return c.LikeCount, nil
	case core.TargetTweet:
		t, err := s.deps.Repo.GetTweet(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return t.LikeCount, nil
	case core.TargetChannel:
		u, err := s.deps.Repo.GetUserByID(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return u.SubscriberCount, nil
	default:
		return 0, core.ErrInvalid
	}
}
