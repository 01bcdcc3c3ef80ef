package core

import (
	"context"
)

// Tx es una transacción del store. El toggle de engagement corre dentro de
// una: o quedan registro y contador juntos, o no queda nada.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Repository define las operaciones de persistencia del servicio.
// Los métodos de engagement aceptan una Tx opcional (nil = fuera de
// transacción, contra el pool).
type Repository interface {
	Ping(ctx context.Context) error
	Close()
	BeginTx(ctx context.Context) (Tx, error)

	// ------- Identity -------
	CreateUser(ctx context.Context, u *User) error // ErrConflict si username o email ya existen
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByLogin(ctx context.Context, identifier string) (*User, error) // username o email
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id, fullName, email string) (*User, error)
	UpdateAvatar(ctx context.Context, id, url string) error
	UpdateCoverImage(ctx context.Context, id, url string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error

	// SetRefreshHash persiste (o limpia, con nil) el hash del refresh token.
	// Es la única vía de escritura del campo fuera de la rotación.
	SetRefreshHash(ctx context.Context, id string, hash *string) error

	// RotateRefreshHash hace el compare-and-swap atómico de la rotación:
	// reemplaza oldHash por newHash solo si oldHash sigue siendo el valor
	// almacenado. swapped=false significa que otro lo rotó o revocó antes.
	RotateRefreshHash(ctx context.Context, id, oldHash, newHash string) (swapped bool, err error)

	AppendWatchHistory(ctx context.Context, userID, videoID string) error

	// ------- Contenido -------
	CreateVideo(ctx context.Context, v *Video) error
	GetVideo(ctx context.Context, id string) (*Video, error)
	ListVideosByOwner(ctx context.Context, ownerID string) ([]Video, error)
	UpdateVideo(ctx context.Context, id, title, description string) (*Video, error)
	SetVideoPublished(ctx context.Context, id string, published bool) (*Video, error)
	DeleteVideo(ctx context.Context, id string) error // borra también sus engagements
	IncrementViewCount(ctx context.Context, id string) (int64, error)
	CountVideosByOwner(ctx context.Context, ownerID string) (int64, error)
	ListVideosByIDs(ctx context.Context, ids []string) ([]Video, error)

	CreateComment(ctx context.Context, c *Comment) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	ListCommentsByVideo(ctx context.Context, videoID string) ([]Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error

	CreateTweet(ctx context.Context, t *Tweet) error
	GetTweet(ctx context.Context, id string) (*Tweet, error)
	ListTweetsByOwner(ctx context.Context, ownerID string) ([]Tweet, error)
	UpdateTweet(ctx context.Context, id, content string) (*Tweet, error)
	DeleteTweet(ctx context.Context, id string) error

	// TargetExists verifica que la entidad apuntada exista.
	TargetExists(ctx context.Context, t Target) (bool, error)

	// ------- Engagement ledger -------
	// InsertEngagement intenta insertar y devuelve el outcome etiquetado:
	// Inserted o AlreadyPresent (violación del UNIQUE compuesto). Nunca
	// reporta la violación esperada como error.
	InsertEngagement(ctx context.Context, tx Tx, e *Engagement) (InsertOutcome, error)
	// DeleteEngagement borra el registro del par (actor, target).
	// deleted=false si no había registro.
	DeleteEngagement(ctx context.Context, tx Tx, actorID string, t Target) (deleted bool, err error)
	IsEngaged(ctx context.Context, actorID string, t Target) (bool, error)
	ListEngagedVideoIDs(ctx context.Context, actorID string) ([]string, error)

	// ------- Counter reconciler -------
	// IncrementCounter / DecrementCounter son updates aritméticos atómicos de
	// un solo statement sobre el contador denormalizado del target.
	// DecrementCounter nunca baja de cero.
	IncrementCounter(ctx context.Context, tx Tx, t Target) (int64, error)
	DecrementCounter(ctx context.Context, tx Tx, t Target) (int64, error)
	// CountEngagements cuenta los registros del ledger para el target
	// (la fuente de verdad del contador).
	CountEngagements(ctx context.Context, t Target) (int64, error)
	// ReconcileCounter pisa el contador con el COUNT del ledger en un solo
	// statement. Idempotente; seguro de correr en cualquier momento.
	ReconcileCounter(ctx context.Context, t Target) (int64, error)
}
