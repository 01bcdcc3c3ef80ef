// Package engagement contiene el service del toggle y la reconciliación de
// contadores.
package engagement

import (
	"context"
	"errors"
	"fmt"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/engagement"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// Service expone el toggle, la consulta de estado y la reconciliación.
type Service interface {
	// Toggle invierte el estado de engagement del par (actor, target) y
	// devuelve el estado resultante junto al contador actualizado.
	Toggle(ctx context.Context, actorID string, target core.Target) (*dto.ToggleResponse, error)

	// Status consulta si el actor tiene engagement activo sobre el target.
	Status(ctx context.Context, actorID string, target core.Target) (*dto.StatusResponse, error)

	// Reconcile corrige el contador denormalizado contra el ledger.
	Reconcile(ctx context.Context, target core.Target) (*dto.ReconcileResponse, error)

	// ListEngagedVideos lista los IDs de videos con engagement del actor.
	ListEngagedVideos(ctx context.Context, actorID string) ([]string, error)
}

var (
	ErrTargetNotFound = fmt.Errorf("target not found")
	ErrInvalidTarget  = fmt.Errorf("invalid target")
	ErrSelfTarget     = fmt.Errorf("cannot subscribe to own channel")
	ErrStoreFailed    = fmt.Errorf("store operation failed")
	// ErrStoreUnavailable: timeout o conexión caída de la persistencia,
	// distinguible del fallo genérico para responder 503.
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
)

// storeErr separa la persistencia caída del fallo genérico.
func storeErr(err error) error {
	if errors.Is(err, core.ErrUnavailable) {
		return ErrStoreUnavailable
	}
	return ErrStoreFailed
}
