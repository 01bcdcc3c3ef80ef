package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/store/storetest"
)

// fakeUploader cuenta uploads y deletes; puede fallar a pedido.
type fakeUploader struct {
	uploads   int
	deletes   []string
	failAfter int // falla a partir del upload N (1-based); 0 = nunca
}

func (f *fakeUploader) Upload(_ context.Context, folder, _ string, r io.Reader) (string, string, error) {
	f.uploads++
	if f.failAfter > 0 && f.uploads >= f.failAfter {
		return "", "", errors.New("upload boom")
	}
	_, _ = io.Copy(io.Discard, r)
	key := fmt.Sprintf("%s/obj-%d", folder, f.uploads)
	return key, "https://cdn.example.com/" + key, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func upload() Upload {
	return Upload{ContentType: "video/mp4", Reader: strings.NewReader("bytes")}
}

func TestPublishUploadsAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	up := &fakeUploader{}
	svc := NewVideoService(VideoDeps{Repo: repo, Uploader: up})

	resp, err := svc.Publish(ctx, "owner-1", dto.CreateVideoRequest{Title: "mi clip"}, upload(), upload())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if resp.ID == "" || !resp.Published {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.HasPrefix(resp.VideoURL, "https://cdn.example.com/videos/") {
		t.Errorf("VideoURL = %q", resp.VideoURL)
	}
	if up.uploads != 2 {
		t.Errorf("uploads = %d, esperaba video + thumbnail", up.uploads)
	}
}

func TestPublishCleansUpOnThumbnailFailure(t *testing.T) {
	repo := storetest.New()
	up := &fakeUploader{failAfter: 2}
	svc := NewVideoService(VideoDeps{Repo: repo, Uploader: up})

	_, err := svc.Publish(context.Background(), "owner-1", dto.CreateVideoRequest{Title: "clip"}, upload(), upload())
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("Publish = %v, esperaba ErrUploadFailed", err)
	}
	// El video ya subido tiene que haberse borrado del storage.
	if len(up.deletes) != 1 || !strings.HasPrefix(up.deletes[0], "videos/") {
		t.Errorf("deletes = %v", up.deletes)
	}
}

func TestPublishRequiresTitleAndFile(t *testing.T) {
	svc := NewVideoService(VideoDeps{Repo: storetest.New(), Uploader: &fakeUploader{}})

	if _, err := svc.Publish(context.Background(), "o", dto.CreateVideoRequest{}, upload(), Upload{}); !errors.Is(err, ErrMissingFields) {
		t.Errorf("sin título = %v", err)
	}
	if _, err := svc.Publish(context.Background(), "o", dto.CreateVideoRequest{Title: "t"}, Upload{}, Upload{}); !errors.Is(err, ErrMissingFields) {
		t.Errorf("sin archivo = %v", err)
	}
}

func TestGetIncrementsViewsAndWatchHistory(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewVideoService(VideoDeps{Repo: repo, Uploader: &fakeUploader{}})

	viewer := &core.User{Username: "viewer", Email: "v@example.com", PasswordHash: "x"}
	if err := repo.CreateUser(ctx, viewer); err != nil {
		t.Fatal(err)
	}
	v := &core.Video{OwnerID: "owner-1", Title: "clip", Published: true}
	if err := repo.CreateVideo(ctx, v); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Get(ctx, viewer.ID, v.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.ViewCount != 1 {
		t.Errorf("ViewCount = %d", resp.ViewCount)
	}

	u, _ := repo.GetUserByID(ctx, viewer.ID)
	if len(u.WatchHistory) != 1 || u.WatchHistory[0] != v.ID {
		t.Errorf("WatchHistory = %v", u.WatchHistory)
	}
}

func TestUpdateAndDeleteEnforceOwnership(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewVideoService(VideoDeps{Repo: repo, Uploader: &fakeUploader{}})

	v := &core.Video{OwnerID: "owner-1", Title: "clip"}
	if err := repo.CreateVideo(ctx, v); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, "intruso", v.ID, dto.UpdateVideoRequest{Title: "hack"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Update ajeno = %v, esperaba ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "intruso", v.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete ajeno = %v, esperaba ErrForbidden", err)
	}

	if _, err := svc.Update(ctx, "owner-1", v.ID, dto.UpdateVideoRequest{Title: "nuevo título"}); err != nil {
		t.Errorf("Update propio: %v", err)
	}
	if err := svc.Delete(ctx, "owner-1", v.ID); err != nil {
		t.Errorf("Delete propio: %v", err)
	}
	if _, err := repo.GetVideo(ctx, v.ID); !errors.Is(err, core.ErrNotFound) {
		t.Error("el video tendría que haberse borrado")
	}
}

func TestDeleteVideoRemovesEngagements(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	svc := NewVideoService(VideoDeps{Repo: repo, Uploader: &fakeUploader{}})

	v := &core.Video{OwnerID: "owner-1", Title: "clip"}
	if err := repo.CreateVideo(ctx, v); err != nil {
		t.Fatal(err)
	}
	target := core.Target{Type: core.TargetVideo, ID: v.ID}
	if _, err := repo.InsertEngagement(ctx, nil, &core.Engagement{ActorID: "fan", Target: target}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, "owner-1", v.ID); err != nil {
		t.Fatal(err)
	}
	n, err := repo.CountEngagements(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("quedaron %d engagements huérfanos", n)
	}
}
