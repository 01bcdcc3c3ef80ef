package pg

import (
	"context"

	"github.com/google/uuid"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

const userCols = `id, username, email, full_name, password_hash, refresh_hash,
avatar_url, cover_image_url, watch_history, subscriber_count, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*core.User, error) {
	var u core.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.RefreshHash,
		&u.AvatarURL, &u.CoverImageURL, &u.WatchHistory, &u.SubscriberCount,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const q = `
INSERT INTO app_user (id, username, email, full_name, password_hash, avatar_url, cover_image_url)
VALUES ($1, LOWER($2), LOWER($3), $4, $5, $6, $7)
RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, q,
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.AvatarURL, u.CoverImageURL).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapErr(err)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

// GetUserByLogin busca por username o email (ambos se guardan en minúsculas).
func (s *Store) GetUserByLogin(ctx context.Context, identifier string) (*core.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE username = LOWER($1) OR email = LOWER($1)`,
		identifier))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE username = LOWER($1)`, username))
}

func (s *Store) UpdateProfile(ctx context.Context, id, fullName, email string) (*core.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
UPDATE app_user SET full_name = $2, email = LOWER($3), updated_at = now()
WHERE id = $1
RETURNING ` + userCols
	return scanUser(s.pool.QueryRow(ctx, q, id, fullName, email))
}

func (s *Store) UpdateAvatar(ctx context.Context, id, url string) error {
	return s.updateOneField(ctx, id, "avatar_url", url)
}

func (s *Store) UpdateCoverImage(ctx context.Context, id, url string) error {
	return s.updateOneField(ctx, id, "cover_image_url", url)
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return s.updateOneField(ctx, id, "password_hash", hash)
}

func (s *Store) updateOneField(ctx context.Context, id, col, val string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`UPDATE app_user SET `+col+` = $2, updated_at = now() WHERE id = $1`, id, val)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// SetRefreshHash persiste o limpia (nil) el hash del refresh token.
// Limpiar un campo ya nulo es un no-op exitoso: revoke es idempotente.
func (s *Store) SetRefreshHash(ctx context.Context, id string, hash *string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`UPDATE app_user SET refresh_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// RotateRefreshHash es el compare-and-swap de la rotación: un solo UPDATE
// condicionado al valor vigente. De dos rotaciones concurrentes con el mismo
// token, exactamente una ve swapped=true.
func (s *Store) RotateRefreshHash(ctx context.Context, id, oldHash, newHash string) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`UPDATE app_user SET refresh_hash = $3, updated_at = now()
		 WHERE id = $1 AND refresh_hash = $2`, id, oldHash, newHash)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

// AppendWatchHistory agrega un video al historial si todavía no está.
func (s *Store) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`UPDATE app_user SET watch_history = array_append(watch_history, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(watch_history))`, userID, videoID)
	return mapErr(err)
}
