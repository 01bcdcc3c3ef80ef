// Package cache provee un cache chico de lecturas calientes (perfiles de
// canal, stats) con backend memory o redis.
package cache

import (
	"context"
	"time"
)

// Client define las operaciones de cache que consumen los services.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda un valor con TTL. Si ttl es 0 se usa el default del backend.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete elimina una key; key inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	Close() error
}

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "cache: key not found" }

// Config configuración para crear un cliente.
type Config struct {
	Backend    string // "memory" | "redis"
	Addr       string
	DB         int
	Prefix     string
	DefaultTTL time.Duration
}

// New crea el cliente según el backend. Backend desconocido o vacío cae a
// memory, que siempre está disponible.
func New(cfg Config) (Client, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedis(cfg)
	default:
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	}
}
