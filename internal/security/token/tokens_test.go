package tokens

import "testing"

func TestGenerateOpaque(t *testing.T) {
	a, err := GenerateOpaque(32)
	if err != nil {
		t.Fatalf("GenerateOpaque: %v", err)
	}
	b, err := GenerateOpaque(32)
	if err != nil {
		t.Fatalf("GenerateOpaque: %v", err)
	}
	if a == b {
		t.Error("dos tokens opacos seguidos no pueden coincidir")
	}
	// 32 bytes en base64url sin padding = 43 caracteres.
	if len(a) != 43 {
		t.Errorf("len = %d, esperaba 43", len(a))
	}
}

func TestSHA256Base64URLDeterministic(t *testing.T) {
	h1 := SHA256Base64URL("refresh-token-raw")
	h2 := SHA256Base64URL("refresh-token-raw")
	if h1 != h2 {
		t.Error("el hash tiene que ser determinístico")
	}
	if h1 == "refresh-token-raw" {
		t.Error("el hash no puede ser la entrada")
	}
	if h1 == SHA256Base64URL("refresh-token-raw2") {
		t.Error("entradas distintas produjeron el mismo hash")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual("abc", "abc") {
		t.Error("iguales reportados como distintos")
	}
	if ConstantTimeEqual("abc", "abd") {
		t.Error("distintos reportados como iguales")
	}
	if ConstantTimeEqual("abc", "abcd") {
		t.Error("longitudes distintas reportadas como iguales")
	}
}
