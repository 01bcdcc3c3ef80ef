package helpers

import (
	"encoding/json"
	"net/http"
)

// MaxJSONBody limita el tamaño de bodies JSON de la API.
const MaxJSONBody = 64 * 1024 // 64KB

// DecodeJSON parsea el body JSON del request en dst con límite de tamaño.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
