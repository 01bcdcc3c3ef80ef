// Package media sube y borra objetos (avatars, covers, videos, thumbnails)
// contra un object storage S3-compatible (MinIO en dev, S3 en prod).
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader es el contrato que consumen los services. La implementación real
// es S3; los tests usan un fake en memoria.
type Uploader interface {
	// Upload sube el contenido bajo una key nueva dentro de folder y
	// devuelve (key, URL pública).
	Upload(ctx context.Context, folder, contentType string, r io.Reader) (key, url string, err error)
	// Delete borra el objeto; key inexistente no es error.
	Delete(ctx context.Context, key string) error
}

// StorageKey genera una key particionada por fecha, al estilo
// users/2026/8/30/<uuid>. La partición mantiene los listados del bucket
// manejables.
func StorageKey(folder string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%d/%d/%s", folder, d.Year(), int(d.Month()), d.Day(), uuid.NewString())
}

// PublicURL compone la URL de lectura a partir de la base pública del bucket.
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
