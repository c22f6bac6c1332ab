package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("hachage: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("format de hash inattendu: %s", hash)
	}

	ok, err := VerifyPassword("motdepasse123", hash)
	if err != nil {
		t.Fatalf("vérification: %v", err)
	}
	if !ok {
		t.Error("le bon mot de passe doit être accepté")
	}

	ok, err = VerifyPassword("mauvais", hash)
	if err != nil {
		t.Fatalf("vérification: %v", err)
	}
	if ok {
		t.Error("un mauvais mot de passe doit être refusé")
	}
}

func TestHashPasswordUsesUniqueSalt(t *testing.T) {
	h1, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("hachage: %v", err)
	}
	h2, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("hachage: %v", err)
	}
	if h1 == h2 {
		t.Error("deux hachages du même mot de passe doivent différer (sel aléatoire)")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, bad := range []string{"", "pasunhash", "$argon2id$v=19$tronqué"} {
		if ok, _ := VerifyPassword("x", bad); ok {
			t.Errorf("hash malformé %q accepté", bad)
		}
	}
}
