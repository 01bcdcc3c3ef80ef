package engagement

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sanikant20/videoTube-Server/internal/cache"
	channelsvc "github.com/sanikant20/videoTube-Server/internal/http/services/channel"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/store/storetest"
)

func seedVideo(t *testing.T, repo *storetest.Fake) core.Target {
	t.Helper()
	v := &core.Video{OwnerID: "owner-1", Title: "clip", Published: true}
	if err := repo.CreateVideo(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	return core.Target{Type: core.TargetVideo, ID: v.ID}
}

func seedChannel(t *testing.T, repo *storetest.Fake, username string) string {
	t.Helper()
	u := &core.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u.ID
}

func TestToggleFlipsStateAndCounter(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	on, err := svc.Toggle(ctx, "actor-1", target)
	if err != nil {
		t.Fatalf("primer toggle: %v", err)
	}
	if !on.Engaged || on.Count != 1 {
		t.Errorf("primer toggle = engaged=%v count=%d, esperaba true/1", on.Engaged, on.Count)
	}

	st, err := svc.Status(ctx, "actor-1", target)
	if err != nil || !st.Engaged {
		t.Errorf("Status tras toggle on = %+v, %v", st, err)
	}

	off, err := svc.Toggle(ctx, "actor-1", target)
	if err != nil {
		t.Fatalf("segundo toggle: %v", err)
	}
	if off.Engaged || off.Count != 0 {
		t.Errorf("segundo toggle = engaged=%v count=%d, esperaba false/0", off.Engaged, off.Count)
	}

	st, err = svc.Status(ctx, "actor-1", target)
	if err != nil || st.Engaged {
		t.Errorf("Status tras toggle off = %+v, %v", st, err)
	}
}

func TestToggleIsInvolutionPerActor(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	// Cualquier secuencia par de toggles del mismo actor deja todo como
	// estaba; actores distintos suman de a uno.
	for i := 0; i < 3; i++ {
		actor := fmt.Sprintf("actor-%d", i)
		if _, err := svc.Toggle(ctx, actor, target); err != nil {
			t.Fatal(err)
		}
	}
	v, err := repo.GetVideo(ctx, target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if v.LikeCount != 3 {
		t.Errorf("LikeCount = %d con 3 actores, esperaba 3", v.LikeCount)
	}

	for i := 0; i < 4; i++ {
		if _, err := svc.Toggle(ctx, "actor-0", target); err != nil {
			t.Fatal(err)
		}
	}
	v, _ = repo.GetVideo(ctx, target.ID)
	if v.LikeCount != 3 {
		t.Errorf("LikeCount = %d tras 4 toggles pares de actor-0, esperaba 3", v.LikeCount)
	}

	ledger, err := repo.CountEngagements(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	if ledger != v.LikeCount {
		t.Errorf("contador (%d) y ledger (%d) divergen", v.LikeCount, ledger)
	}
}

func TestToggleRetriesWhenDeleteRaces(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	if _, err := svc.Toggle(ctx, "actor-1", target); err != nil {
		t.Fatal(err)
	}

	// El insert ve el registro pero el delete "no lo encuentra" (carrera):
	// el intento se descarta y el reintento decide de nuevo.
	repo.MissDeleteOnce = true
	resp, err := svc.Toggle(ctx, "actor-1", target)
	if err != nil {
		t.Fatalf("toggle con carrera simulada: %v", err)
	}
	if resp.Engaged || resp.Count != 0 {
		t.Errorf("resp = engaged=%v count=%d, esperaba false/0", resp.Engaged, resp.Count)
	}
}

func TestToggleValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(Deps{Repo: storetest.New()})

	if _, err := svc.Toggle(ctx, "actor-1", core.Target{Type: "playlist", ID: "x"}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("tipo inválido = %v", err)
	}
	if _, err := svc.Toggle(ctx, "actor-1", core.Target{Type: core.TargetVideo, ID: ""}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("id vacío = %v", err)
	}
	if _, err := svc.Toggle(ctx, "actor-1", core.Target{Type: core.TargetVideo, ID: "no-such"}); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("target inexistente = %v", err)
	}
}

func TestToggleSelfSubscription(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	channelID := seedChannel(t, repo, "creator")

	if _, err := svc.Toggle(ctx, channelID, core.Target{Type: core.TargetChannel, ID: channelID}); !errors.Is(err, ErrSelfTarget) {
		t.Errorf("auto-suscripción = %v, esperaba ErrSelfTarget", err)
	}
}

func TestSubscriptionCounter(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	channelID := seedChannel(t, repo, "creator")
	fanID := seedChannel(t, repo, "fan")

	target := core.Target{Type: core.TargetChannel, ID: channelID}
	resp, err := svc.Toggle(ctx, fanID, target)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Engaged || resp.Count != 1 {
		t.Errorf("suscripción = %+v", resp)
	}

	u, err := repo.GetUserByID(ctx, channelID)
	if err != nil {
		t.Fatal(err)
	}
	if u.SubscriberCount != 1 {
		t.Errorf("SubscriberCount = %d, esperaba 1", u.SubscriberCount)
	}
}

func TestReconcileCorrectsDrift(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Toggle(ctx, fmt.Sprintf("actor-%d", i), target); err != nil {
			t.Fatal(err)
		}
	}

	// Drift inyectado: el contador quedó desincronizado del ledger.
	if err := repo.SetCounter(target, 10); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Reconcile(ctx, target)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if resp.Before != 10 || resp.After != 3 || resp.Drift != -7 {
		t.Errorf("Reconcile = before=%d after=%d drift=%d, esperaba 10/3/-7", resp.Before, resp.After, resp.Drift)
	}

	v, _ := repo.GetVideo(ctx, target.ID)
	if v.LikeCount != 3 {
		t.Errorf("LikeCount tras reconcile = %d, esperaba 3", v.LikeCount)
	}
}

func TestReconcileNoDriftIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	if _, err := svc.Toggle(ctx, "actor-1", target); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		resp, err := svc.Reconcile(ctx, target)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Drift != 0 || resp.After != 1 {
			t.Errorf("Reconcile #%d = %+v, esperaba drift 0 / after 1", i+1, resp)
		}
	}
}

func TestReconcileUnknownTarget(t *testing.T) {
	svc := NewService(Deps{Repo: storetest.New()})
	_, err := svc.Reconcile(context.Background(), core.Target{Type: core.TargetVideo, ID: "no-such"})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Reconcile sobre target inexistente = %v", err)
	}
}

func TestListEngagedVideos(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})

	t1 := seedVideo(t, repo)
	t2 := seedVideo(t, repo)
	if _, err := svc.Toggle(ctx, "actor-1", t1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, "actor-1", t2); err != nil {
		t.Fatal(err)
	}
	// Un canal no ensucia el listado de videos.
	chID := seedChannel(t, repo, "creator")
	if _, err := svc.Toggle(ctx, "actor-1", core.Target{Type: core.TargetChannel, ID: chID}); err != nil {
		t.Fatal(err)
	}

	ids, err := svc.ListEngagedVideos(ctx, "actor-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ListEngagedVideos = %v, esperaba 2 ids", ids)
	}
}

func TestToggleConcurrentSamePair(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewService(Deps{Repo: repo})
	target := seedVideo(t, repo)

	// Muchos toggles del mismo par en paralelo: cada uno commitea exactamente
	// un flip neto. Al asentarse, el contador coincide con el ledger y el
	// estado es el de la paridad total.
	const workers = 8
	const togglesEach = 5

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < togglesEach; i++ {
				if _, err := svc.Toggle(ctx, "actor-1", target); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("toggle concurrente: %v", err)
	}

	v, err := repo.GetVideo(ctx, target.ID)
	if err != nil {
		t.Fatal(err)
	}
	ledger, err := repo.CountEngagements(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	if v.LikeCount != ledger {
		t.Errorf("counter=%d ledger=%d, tienen que coincidir", v.LikeCount, ledger)
	}
	if v.LikeCount != 0 && v.LikeCount != 1 {
		t.Errorf("counter=%d, un solo par solo puede valer 0 o 1", v.LikeCount)
	}
	// workers*togglesEach es par: el estado vuelve al inicial.
	if v.LikeCount != 0 {
		t.Errorf("counter=%d tras %d flips, esperaba 0", v.LikeCount, workers*togglesEach)
	}
	st, err := svc.Status(ctx, "actor-1", target)
	if err != nil || st.Engaged {
		t.Errorf("Status final = %+v, %v", st, err)
	}
}

func TestToggleInvalidatesChannelProfileCache(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	cc := cache.NewMemory("test", time.Minute)
	svc := NewService(Deps{Repo: repo, Cache: cc})

	chID := seedChannel(t, repo, "creator")
	key := channelsvc.ProfileCacheKey("creator")
	if err := cc.Set(ctx, key, []byte(`{"subscriber_count":0}`), time.Minute); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Toggle(ctx, "fan-1", core.Target{Type: core.TargetChannel, ID: chID}); err != nil {
		t.Fatal(err)
	}

	if _, err := cc.Get(ctx, key); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("el perfil cacheado sigue vivo tras el toggle: err=%v", err)
	}

	// Un like sobre un video no toca el cache de canal.
	if err := cc.Set(ctx, key, []byte(`{}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, "fan-1", seedVideo(t, repo)); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Get(ctx, key); err != nil {
		t.Errorf("un toggle de video invalidó el perfil de canal: %v", err)
	}
}

// downRepo simula la persistencia caída en el lookup del target.
type downRepo struct {
	core.Repository
}

func (downRepo) TargetExists(context.Context, core.Target) (bool, error) {
	return false, core.ErrUnavailable
}

func TestToggleStoreUnavailable(t *testing.T) {
	svc := NewService(Deps{Repo: downRepo{storetest.New()}})

	_, err := svc.Toggle(context.Background(), "actor-1", core.Target{Type: core.TargetVideo, ID: "v-1"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, esperaba ErrStoreUnavailable", err)
	}
}
