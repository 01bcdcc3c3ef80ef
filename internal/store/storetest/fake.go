// Package storetest provee una implementación en memoria de core.Repository
// para tests de services. No es un mock de expectativas: se comporta como el
// store real (conflictos, CAS, outcome etiquetado) sobre maps con mutex.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

type engKey struct {
	actorID    string
	targetType core.TargetType
	targetID   string
}

// Fake implementa core.Repository en memoria.
type Fake struct {
	mu sync.Mutex

	// txMu serializa transacciones completas: la que empieza segunda espera
	// al Commit/Rollback de la primera, como el row lock de Postgres sobre
	// el par en conflicto.
	txMu sync.Mutex

	users    map[string]*core.User
	videos   map[string]*core.Video
	comments map[string]*core.Comment
	tweets   map[string]*core.Tweet

	engagements map[engKey]core.Engagement
	seq         int

	// MissDeleteOnce hace que el próximo DeleteEngagement devuelva
	// deleted=false sin tocar el ledger, simulando la carrera en la que otro
	// toggle borró la fila entre el insert y el delete.
	MissDeleteOnce bool
}

func New() *Fake {
	return &Fake{
		users:       map[string]*core.User{},
		videos:      map[string]*core.Video{},
		comments:    map[string]*core.Comment{},
		tweets:      map[string]*core.Tweet{},
		engagements: map[engKey]core.Engagement{},
	}
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%04d", prefix, f.seq)
}

func (f *Fake) Ping(context.Context) error { return nil }
func (f *Fake) Close()                     {}

// ------- Tx -------

// fakeTx aplica las operaciones de inmediato y acumula undos; Rollback los
// ejecuta en orden inverso.
type fakeTx struct {
	f     *Fake
	undos []func()
	done  bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.undos = nil
	t.f.txMu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.f.mu.Lock()
	for i := len(t.undos) - 1; i >= 0; i-- {
		t.undos[i]()
	}
	t.undos = nil
	t.f.mu.Unlock()
	t.f.txMu.Unlock()
	return nil
}

func (f *Fake) BeginTx(context.Context) (core.Tx, error) {
	f.txMu.Lock()
	return &fakeTx{f: f}, nil
}

func asFakeTx(tx core.Tx) *fakeTx {
	if t, ok := tx.(*fakeTx); ok {
		return t
	}
	return nil
}

// ------- Identity -------

func (f *Fake) CreateUser(_ context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if strings.EqualFold(ex.Username, u.Username) || strings.EqualFold(ex.Email, u.Email) {
			return core.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = f.nextID("user")
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *Fake) GetUserByID(_ context.Context, id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *Fake) GetUserByLogin(_ context.Context, identifier string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *Fake) GetUserByUsername(_ context.Context, username string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *Fake) UpdateProfile(_ context.Context, id, fullName, email string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if email != "" {
		for oid, other := range f.users {
			if oid != id && strings.EqualFold(other.Email, email) {
				return nil, core.ErrConflict
			}
		}
		u.Email = email
	}
	if fullName != "" {
		u.FullName = fullName
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (f *Fake) UpdateAvatar(_ context.Context, id, url string) error {
	return f.mutateUser(id, func(u *core.User) { u.AvatarURL = url })
}

func (f *Fake) UpdateCoverImage(_ context.Context, id, url string) error {
	return f.mutateUser(id, func(u *core.User) { u.CoverImageURL = url })
}

func (f *Fake) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return f.mutateUser(id, func(u *core.User) { u.PasswordHash = hash })
}

func (f *Fake) SetRefreshHash(_ context.Context, id string, hash *string) error {
	return f.mutateUser(id, func(u *core.User) {
		if hash == nil {
			u.RefreshHash = nil
			return
		}
		h := *hash
		u.RefreshHash = &h
	})
}

func (f *Fake) RotateRefreshHash(_ context.Context, id, oldHash, newHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, core.ErrNotFound
	}
	if u.RefreshHash == nil || *u.RefreshHash != oldHash {
		return false, nil
	}
	h := newHash
	u.RefreshHash = &h
	return true, nil
}

func (f *Fake) AppendWatchHistory(_ context.Context, userID, videoID string) error {
	return f.mutateUser(userID, func(u *core.User) {
		for i, id := range u.WatchHistory {
			if id == videoID {
				u.WatchHistory = append(u.WatchHistory[:i], u.WatchHistory[i+1:]...)
				break
			}
		}
		u.WatchHistory = append(u.WatchHistory, videoID)
	})
}

func (f *Fake) mutateUser(id string, mutate func(*core.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return core.ErrNotFound
	}
	mutate(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ------- Contenido -------

func (f *Fake) CreateVideo(_ context.Context, v *core.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID == "" {
		v.ID = f.nextID("video")
	}
	now := time.Now().UTC()
	v.CreatedAt, v.UpdatedAt = now, now
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *Fake) GetVideo(_ context.Context, id string) (*core.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *Fake) ListVideosByOwner(_ context.Context, ownerID string) ([]core.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Video
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) ListVideosByIDs(_ context.Context, ids []string) ([]core.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Video
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *Fake) UpdateVideo(_ context.Context, id, title, description string) (*core.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if title != "" {
		v.Title = title
	}
	if description != "" {
		v.Description = description
	}
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	return &cp, nil
}

func (f *Fake) SetVideoPublished(_ context.Context, id string, published bool) (*core.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	v.Published = published
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	return &cp, nil
}

func (f *Fake) DeleteVideo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.videos, id)
	f.dropEngagementsLocked(core.Target{Type: core.TargetVideo, ID: id})
	return nil
}

func (f *Fake) IncrementViewCount(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return 0, core.ErrNotFound
	}
	v.ViewCount++
	return v.ViewCount, nil
}

func (f *Fake) CountVideosByOwner(_ context.Context, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *Fake) CreateComment(_ context.Context, c *core.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.nextID("comment")
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *Fake) GetComment(_ context.Context, id string) (*core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *Fake) ListCommentsByVideo(_ context.Context, videoID string) ([]core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) UpdateComment(_ context.Context, id, content string) (*core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (f *Fake) DeleteComment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.comments, id)
	f.dropEngagementsLocked(core.Target{Type: core.TargetComment, ID: id})
	return nil
}

func (f *Fake) CreateTweet(_ context.Context, t *core.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = f.nextID("tweet")
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	f.tweets[t.ID] = &cp
	return nil
}

func (f *Fake) GetTweet(_ context.Context, id string) (*core.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tweets[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *Fake) ListTweetsByOwner(_ context.Context, ownerID string) ([]core.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Tweet
	for _, t := range f.tweets {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) UpdateTweet(_ context.Context, id, content string) (*core.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tweets[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	t.Content = content
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (f *Fake) DeleteTweet(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tweets[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.tweets, id)
	f.dropEngagementsLocked(core.Target{Type: core.TargetTweet, ID: id})
	return nil
}

func (f *Fake) TargetExists(_ context.Context, t core.Target) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch t.Type {
	case core.TargetVideo:
		_, ok := f.videos[t.ID]
		return ok, nil
	case core.TargetComment:
		_, ok := f.comments[t.ID]
		return ok, nil
	case core.TargetTweet:
		_, ok := f.tweets[t.ID]
		return ok, nil
	case core.TargetChannel:
		_, ok := f.users[t.ID]
		return ok, nil
	}
	return false, core.ErrInvalid
}

// ------- Engagement ledger -------

func (f *Fake) InsertEngagement(_ context.Context, tx core.Tx, e *core.Engagement) (core.InsertOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := engKey{actorID: e.ActorID, targetType: e.Target.Type, targetID: e.Target.ID}
	if _, ok := f.engagements[key]; ok {
		return core.AlreadyPresent, nil
	}
	if e.ID == "" {
		e.ID = f.nextID("eng")
	}
	e.CreatedAt = time.Now().UTC()
	f.engagements[key] = *e
	if t := asFakeTx(tx); t != nil {
		t.undos = append(t.undos, func() { delete(f.engagements, key) })
	}
	return core.Inserted, nil
}

func (f *Fake) DeleteEngagement(_ context.Context, tx core.Tx, actorID string, target core.Target) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MissDeleteOnce {
		f.MissDeleteOnce = false
		return false, nil
	}
	key := engKey{actorID: actorID, targetType: target.Type, targetID: target.ID}
	prev, ok := f.engagements[key]
	if !ok {
		return false, nil
	}
	delete(f.engagements, key)
	if t := asFakeTx(tx); t != nil {
		t.undos = append(t.undos, func() { f.engagements[key] = prev })
	}
	return true, nil
}

func (f *Fake) IsEngaged(_ context.Context, actorID string, target core.Target) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.engagements[engKey{actorID: actorID, targetType: target.Type, targetID: target.ID}]
	return ok, nil
}

func (f *Fake) ListEngagedVideoIDs(_ context.Context, actorID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for key := range f.engagements {
		if key.actorID == actorID && key.targetType == core.TargetVideo {
			out = append(out, key.targetID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ------- Counters -------

func (f *Fake) IncrementCounter(_ context.Context, tx core.Tx, target core.Target) (int64, error) {
	return f.addToCounter(tx, target, 1)
}

func (f *Fake) DecrementCounter(_ context.Context, tx core.Tx, target core.Target) (int64, error) {
	return f.addToCounter(tx, target, -1)
}

func (f *Fake) addToCounter(tx core.Tx, target core.Target, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counter, err := f.counterLocked(target)
	if err != nil {
		return 0, err
	}
	prev := *counter
	next := prev + delta
	if next < 0 {
		next = 0
	}
	*counter = next
	if t := asFakeTx(tx); t != nil {
		t.undos = append(t.undos, func() { *counter = prev })
	}
	return next, nil
}

func (f *Fake) CountEngagements(_ context.Context, target core.Target) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(target), nil
}

func (f *Fake) ReconcileCounter(_ context.Context, target core.Target) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counter, err := f.counterLocked(target)
	if err != nil {
		return 0, err
	}
	n := f.countLocked(target)
	*counter = n
	return n, nil
}

// SetCounter pisa el contador denormalizado directamente, sin tocar el
// ledger. Existe para inyectar drift en tests de reconciliación.
func (f *Fake) SetCounter(target core.Target, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	counter, err := f.counterLocked(target)
	if err != nil {
		return err
	}
	*counter = n
	return nil
}

func (f *Fake) counterLocked(target core.Target) (*int64, error) {
	switch target.Type {
	case core.TargetVideo:
		if v, ok := f.videos[target.ID]; ok {
			return &v.LikeCount, nil
		}
	case core.TargetComment:
		if c, ok := f.comments[target.ID]; ok {
			return &c.LikeCount, nil
		}
	case core.TargetTweet:
		if t, ok := f.tweets[target.ID]; ok {
			return &t.LikeCount, nil
		}
	case core.TargetChannel:
		if u, ok := f.users[target.ID]; ok {
			return &u.SubscriberCount, nil
		}
	default:
		return nil, core.ErrInvalid
	}
	return nil, core.ErrNotFound
}

func (f *Fake) countLocked(target core.Target) int64 {
	var n int64
	for key := range f.engagements {
		if key.targetType == target.Type && key.targetID == target.ID {
			n++
		}
	}
	return n
}

func (f *Fake) dropEngagementsLocked(target core.Target) {
	for key := range f.engagements {
		if key.targetType == target.Type && key.targetID == target.ID {
			delete(f.engagements, key)
		}
	}
}

var _ core.Repository = (*Fake)(nil)
