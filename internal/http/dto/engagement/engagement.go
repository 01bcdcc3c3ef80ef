// Package engagement define los DTOs del toggle y los contadores.
package engagement

// ToggleResponse reporta el estado resultante del toggle y el contador
// denormalizado después de aplicar el flip.
type ToggleResponse struct {
	Engaged bool  `json:"engaged"`
	Count   int64 `json:"count"`
}

type StatusResponse struct {
	Engaged bool `json:"engaged"`
}

// ReconcileResponse reporta la corrección aplicada al contador.
type ReconcileResponse struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Before     int64  `json:"before"`
	After      int64  `json:"after"`
	Drift      int64  `json:"drift"`
}
