package pg

import (
	"context"

	"github.com/google/uuid"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// ====================== VIDEOS ======================

const videoCols = `id, owner_id, title, description, video_url, thumbnail_url,
duration, published, view_count, like_count, created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (*core.Video, error) {
	var v core.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
		&v.Duration, &v.Published, &v.ViewCount, &v.LikeCount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (s *Store) CreateVideo(ctx context.Context, v *core.Video) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	const q = `
INSERT INTO video (id, owner_id, title, description, video_url, thumbnail_url, duration, published)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, q,
		v.ID, v.OwnerID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.Duration, v.Published).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	return mapErr(err)
}

func (s *Store) GetVideo(ctx context.Context, id string) (*core.Video, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanVideo(s.pool.QueryRow(ctx,
		`SELECT `+videoCols+` FROM video WHERE id = $1`, id))
}

func (s *Store) ListVideosByOwner(ctx context.Context, ownerID string) ([]core.Video, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT `+videoCols+` FROM video WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []core.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, mapErr(rows.Err())
}

func (s *Store) ListVideosByIDs(ctx context.Context, ids []string) ([]core.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT `+videoCols+` FROM video WHERE id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []core.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, mapErr(rows.Err())
}

func (s *Store) UpdateVideo(ctx context.Context, id, title, description string) (*core.Video, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
UPDATE video SET title = $2, description = $3, updated_at = now()
WHERE id = $1
RETURNING ` + videoCols
	return scanVideo(s.pool.QueryRow(ctx, q, id, title, description))
}

func (s *Store) SetVideoPublished(ctx context.Context, id string, published bool) (*core.Video, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
UPDATE video SET published = $2, updated_at = now()
WHERE id = $1
RETURNING ` + videoCols
	return scanVideo(s.pool.QueryRow(ctx, q, id, published))
}

// DeleteVideo borra el video y sus engagements en la misma transacción:
// el ledger no puede quedar con referencias a un target inexistente.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	return s.deleteTarget(ctx, "video", core.TargetVideo, id)
}

// IncrementViewCount es un update aritmético de un solo statement.
func (s *Store) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int64
	err := s.pool.QueryRow(ctx,
		`UPDATE video SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`, id).
		Scan(&n)
	return n, mapErr(err)
}

func (s *Store) CountVideosByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM video WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, mapErr(err)
}

// ====================== COMMENTS ======================

const commentCols = `id, video_id, owner_id, content, like_count, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*core.Comment, error) {
	var c core.Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.LikeCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (s *Store) CreateComment(ctx context.Context, c *core.Comment) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const q = `
INSERT INTO comment (id, video_id, owner_id, content)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, q, c.ID, c.VideoID, c.OwnerID, c.Content).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapErr(err)
}

func (s *Store) GetComment(ctx context.Context, id string) (*core.Comment, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanComment(s.pool.QueryRow(ctx,
		`SELECT `+commentCols+` FROM comment WHERE id = $1`, id))
}

func (s *Store) ListCommentsByVideo(ctx context.Context, videoID string) ([]core.Comment, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT `+commentCols+` FROM comment WHERE video_id = $1 ORDER BY created_at DESC`, videoID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []core.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, mapErr(rows.Err())
}

func (s *Store) UpdateComment(ctx context.Context, id, content string) (*core.Comment, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
UPDATE comment SET content = $2, updated_at = now()
WHERE id = $1
RETURNING ` + commentCols
	return scanComment(s.pool.QueryRow(ctx, q, id, content))
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.deleteTarget(ctx, "comment", core.TargetComment, id)
}

// ====================== TWEETS ======================

const tweetCols = `id, owner_id, content, like_count, created_at, updated_at`

func scanTweet(row interface{ Scan(...any) error }) (*core.Tweet, error) {
	var t core.Tweet
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.LikeCount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (s *Store) CreateTweet(ctx context.Context, t *core.Tweet) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
INSERT INTO tweet (id, owner_id, content)
VALUES ($1, $2, $3)
RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, q, t.ID, t.OwnerID, t.Content).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	return mapErr(err)
}

func (s *Store) GetTweet(ctx context.Context, id string) (*core.Tweet, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanTweet(s.pool.QueryRow(ctx,
		`SELECT `+tweetCols+` FROM tweet WHERE id = $1`, id))
}

func (s *Store) ListTweetsByOwner(ctx context.Context, ownerID string) ([]core.Tweet, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT `+tweetCols+` FROM tweet WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []core.Tweet
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, mapErr(rows.Err())
}

func (s *Store) UpdateTweet(ctx context.Context, id, content string) (*core.Tweet, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
UPDATE tweet SET content = $2, updated_at = now()
WHERE id = $1
RETURNING ` + tweetCols
	return scanTweet(s.pool.QueryRow(ctx, q, id, content))
}

func (s *Store) DeleteTweet(ctx context.Context, id string) error {
	return s.deleteTarget(ctx, "tweet", core.TargetTweet, id)
}

// deleteTarget borra una fila de contenido junto con los engagements que la
// referencian, en una sola transacción.
func (s *Store) deleteTarget(ctx context.Context, table string, tt core.TargetType, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM engagement WHERE target_type = $1 AND target_id = $2`, tt, id); err != nil {
		return mapErr(err)
	}
	return mapErr(tx.Commit(ctx))
}
