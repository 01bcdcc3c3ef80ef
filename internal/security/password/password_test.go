package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h == "s3cret-pass" {
		t.Fatal("el hash no puede ser el texto plano")
	}
	if !Verify("s3cret-pass", h) {
		t.Error("Verify con la contraseña correcta devolvió false")
	}
	if Verify("otra-cosa", h) {
		t.Error("Verify con contraseña incorrecta devolvió true")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	if _, err := Hash(""); err == nil {
		t.Error("Hash(\"\") debería fallar")
	}
}

func TestVerifyDegenerateInputs(t *testing.T) {
	if Verify("", "whatever") {
		t.Error("Verify con plano vacío devolvió true")
	}
	if Verify("pass", "") {
		t.Error("Verify con hash vacío devolvió true")
	}
	if Verify("pass", "no-es-un-hash-bcrypt") {
		t.Error("Verify con hash malformado devolvió true")
	}
}
