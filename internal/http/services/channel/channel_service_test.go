package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/cache"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/store/storetest"
)

func seedUser(t *testing.T, repo *storetest.Fake, username string) *core.User {
	t.Helper()
	u := &core.User{Username: username, Email: username + "@example.com", FullName: "Creator", PasswordHash: "x"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func newService(repo *storetest.Fake) Service {
	return NewService(Deps{Repo: repo, Cache: cache.NewMemory("test", time.Minute)})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := newService(repo)
	ch := seedUser(t, repo, "creator")

	for i := 0; i < 2; i++ {
		if err := repo.CreateVideo(ctx, &core.Video{OwnerID: ch.ID, Title: "clip"}); err != nil {
			t.Fatal(err)
		}
	}

	p, err := svc.Profile(ctx, "Creator", "")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Username != "creator" || p.VideoCount != 2 {
		t.Errorf("profile = %+v", p)
	}
	if p.IsSubscribed {
		t.Error("sin espectador no hay is_subscribed")
	}
}

func TestProfileSubscriptionIsPerViewer(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := newService(repo)
	ch := seedUser(t, repo, "creator")
	fan := seedUser(t, repo, "fan")

	if _, err := repo.InsertEngagement(ctx, nil, &core.Engagement{
		ActorID: fan.ID,
		Target:  core.Target{Type: core.TargetChannel, ID: ch.ID},
	}); err != nil {
		t.Fatal(err)
	}

	p, err := svc.Profile(ctx, "creator", fan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsSubscribed {
		t.Error("el fan suscripto tiene que ver is_subscribed=true")
	}

	// Otro espectador consulta el mismo perfil (posiblemente cacheado): la
	// relación es suya, no la del fan.
	other := seedUser(t, repo, "otro")
	p, err = svc.Profile(ctx, "creator", other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsSubscribed {
		t.Error("is_subscribed se filtró entre espectadores")
	}
}

func TestProfileNotFound(t *testing.T) {
	svc := newService(storetest.New())
	if _, err := svc.Profile(context.Background(), "nadie", ""); !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("Profile inexistente = %v", err)
	}
}

func TestWatchHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := newService(repo)
	viewer := seedUser(t, repo, "viewer")

	var ids []string
	for i := 0; i < 3; i++ {
		v := &core.Video{OwnerID: "owner-1", Title: "clip"}
		if err := repo.CreateVideo(ctx, v); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, v.ID)
		if err := repo.AppendWatchHistory(ctx, viewer.ID, v.ID); err != nil {
			t.Fatal(err)
		}
	}

	history, err := svc.WatchHistory(ctx, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history = %d entradas", len(history))
	}
	// Más reciente primero.
	for i := range history {
		if history[i].ID != ids[len(ids)-1-i] {
			t.Errorf("posición %d = %s, esperaba %s", i, history[i].ID, ids[len(ids)-1-i])
		}
	}
}

func TestLikedVideos(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := newService(repo)
	viewer := seedUser(t, repo, "viewer")

	v := &core.Video{OwnerID: "owner-1", Title: "clip"}
	if err := repo.CreateVideo(ctx, v); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.InsertEngagement(ctx, nil, &core.Engagement{
		ActorID: viewer.ID,
		Target:  core.Target{Type: core.TargetVideo, ID: v.ID},
	}); err != nil {
		t.Fatal(err)
	}

	liked, err := svc.LikedVideos(ctx, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(liked) != 1 || liked[0].ID != v.ID {
		t.Errorf("liked = %+v", liked)
	}
}
