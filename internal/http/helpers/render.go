package helpers

import (
	"encoding/json"
	"net/http"
)

const ContentTypeJSON = "application/json; charset=utf-8"

// WriteJSON serializa v con el status dado. Los errores de encoding a esta
// altura ya no tienen arreglo, solo se ignoran.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteNoStore es WriteJSON más los headers anti-cache para respuestas con
// credenciales.
func WriteNoStore(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	WriteJSON(w, status, v)
}
