package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// counterLocation resuelve dónde vive el contador denormalizado de un target.
func counterLocation(tt core.TargetType) (table, column string, err error) {
	switch tt {
	case core.TargetVideo:
		return "video", "like_count", nil
	case core.TargetComment:
		return "comment", "like_count", nil
	case core.TargetTweet:
		return "tweet", "like_count", nil
	case core.TargetChannel:
		return "app_user", "subscriber_count", nil
	default:
		return "", "", fmt.Errorf("target type %q sin contador", tt)
	}
}

func (s *Store) TargetExists(ctx context.Context, t core.Target) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	table, _, err := counterLocation(t.Type)
	if err != nil {
		return false, core.ErrInvalid
	}
	var exists bool
	err = s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, t.ID).Scan(&exists)
	return exists, mapErr(err)
}

// InsertEngagement inserta el registro del ledger. El UNIQUE (actor_id,
// target_type, target_id) convierte el insert duplicado en un no-op y el
// outcome lo reporta: cero filas afectadas significa AlreadyPresent.
func (s *Store) InsertEngagement(ctx context.Context, tx core.Tx, e *core.Engagement) (core.InsertOutcome, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	const q = `
INSERT INTO engagement (id, actor_id, target_type, target_id, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (actor_id, target_type, target_id) DO NOTHING`
	tag, err := s.q(tx).Exec(ctx, q, e.ID, e.ActorID, e.Target.Type, e.Target.ID, e.CreatedAt)
	if err != nil {
		return 0, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.AlreadyPresent, nil
	}
	return core.Inserted, nil
}

func (s *Store) DeleteEngagement(ctx context.Context, tx core.Tx, actorID string, t core.Target) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	const q = `
DELETE FROM engagement
WHERE actor_id = $1 AND target_type = $2 AND target_id = $3`
	tag, err := s.q(tx).Exec(ctx, q, actorID, t.Type, t.ID)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) IsEngaged(ctx context.Context, actorID string, t core.Target) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var exists bool
	err := s.pool.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM engagement
    WHERE actor_id = $1 AND target_type = $2 AND target_id = $3
)`, actorID, t.Type, t.ID).Scan(&exists)
	return exists, mapErr(err)
}

func (s *Store) ListEngagedVideoIDs(ctx context.Context, actorID string) ([]string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
SELECT target_id FROM engagement
WHERE actor_id = $1 AND target_type = $2
ORDER BY created_at DESC`, actorID, core.TargetVideo)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapErr(err)
		}
		ids = append(ids, id)
	}
	return ids, mapErr(rows.Err())
}

// IncrementCounter suma 1 al contador denormalizado del target y devuelve el
// valor nuevo. Un solo statement aritmético: nunca read-modify-write.
func (s *Store) IncrementCounter(ctx context.Context, tx core.Tx, t core.Target) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	table, col, err := counterLocation(t.Type)
	if err != nil {
		return 0, core.ErrInvalid
	}
	var n int64
	q := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE id = $1 RETURNING %s`, table, col, col, col)
	err = s.q(tx).QueryRow(ctx, q, t.ID).Scan(&n)
	return n, mapErr(err)
}

// DecrementCounter resta 1 con piso en cero. El GREATEST es la red de
// seguridad contra drift preexistente; con el ledger y los toggles en
// transacción el contador no debería llegar negativo por sí solo.
func (s *Store) DecrementCounter(ctx context.Context, tx core.Tx, t core.Target) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	table, col, err := counterLocation(t.Type)
	if err != nil {
		return 0, core.ErrInvalid
	}
	var n int64
	q := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE id = $1 RETURNING %s`, table, col, col, col)
	err = s.q(tx).QueryRow(ctx, q, t.ID).Scan(&n)
	return n, mapErr(err)
}

func (s *Store) CountEngagements(ctx context.Context, t core.Target) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int64
	err := s.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM engagement
WHERE target_type = $1 AND target_id = $2`, t.Type, t.ID).Scan(&n)
	return n, mapErr(err)
}

// ReconcileCounter fija el contador al COUNT(*) del ledger en un solo
// statement, para que el valor no pueda quedar stale entre la lectura y la
// escritura. Devuelve el valor corregido.
func (s *Store) ReconcileCounter(ctx context.Context, t core.Target) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	table, col, err := counterLocation(t.Type)
	if err != nil {
		return 0, core.ErrInvalid
	}
	q := fmt.Sprintf(`
UPDATE %s SET %s = (
    SELECT COUNT(*) FROM engagement
    WHERE target_type = $1 AND target_id = %s.id
)
WHERE id = $2
RETURNING %s`, table, col, table, col)
	var n int64
	err = s.pool.QueryRow(ctx, q, t.Type, t.ID).Scan(&n)
	return n, mapErr(err)
}
