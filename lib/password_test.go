package lib

import (
	"encoding/base64"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"
)

func encodeTestHash(password string) string {
	salt := []byte("0123456789abcdef")
	var (
		timeCost uint32 = 1
		memory   uint32 = 64 * 1024
		threads  uint8  = 4
		keyLen   uint32 = 32
	)
	hash := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestVerifyPassword(t *testing.T) {
	encoded := encodeTestHash("everything-bagel")

	ok, err := VerifyPassword("everything-bagel", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword("plain-bagel", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, h := range malformed {
		if _, err := VerifyPassword("anything", h); err == nil {
			t.Errorf("VerifyPassword(%q) should error", h)
		}
	}
}
