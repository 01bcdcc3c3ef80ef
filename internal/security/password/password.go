// Package password encapsula el hashing de contraseñas.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost por defecto para bcrypt.
const Cost = 10

// Hash devuelve el hash bcrypt de una contraseña en texto plano.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara una contraseña en texto plano contra un hash almacenado.
// Devuelve false ante cualquier mismatch o hash malformado; nunca distingue
// el motivo (evita enumeración de cuentas).
func Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
