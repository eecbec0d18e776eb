// Package security hashes and verifies user passwords.
//
// Hashes use the "pbkdf2:<alg>:<iterations>$<salt>$<hex digest>" layout so
// accounts created by earlier deployments of the portal keep working.
// bcrypt hashes are accepted for verification only.
package security

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 600000
	saltLength        = 16
	saltChars         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Hasher produces salted PBKDF2-SHA256 password hashes.
type Hasher struct {
	iterations int
}

func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// Hash derives a hash of password with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", h.iterations, salt, hex.EncodeToString(digest)), nil
}

// Verify reports whether password matches encoded. Malformed hashes never match.
func (h *Hasher) Verify(encoded, password string) bool {
	if strings.HasPrefix(encoded, "$2a$") || strings.HasPrefix(encoded, "$2b$") || strings.HasPrefix(encoded, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 || parts[1] == "" {
		return false
	}
	method, salt, wantHex := parts[0], parts[1], parts[2]

	newHash, size, iterations, ok := parseMethod(method)
	if !ok {
		return false
	}
	want, err := hex.DecodeString(wantHex)
	if err != nil || len(want) != size {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, size, newHash)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseMethod(method string) (func() hash.Hash, int, int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != "pbkdf2" {
		return nil, 0, 0, false
	}

	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return nil, 0, 0, false
		}
		iterations = n
	}

	switch fields[1] {
	case "sha256":
		return sha256.New, sha256.Size, iterations, true
	case "sha512":
		return sha512.New, sha512.Size, iterations, true
	case "sha1":
		return sha1.New, sha1.Size, iterations, true
	default:
		return nil, 0, 0, false
	}
}

func randomSalt(n int) (string, error) {
	const maxByte = 256 - (256 % len(saltChars))
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, saltChars[int(b)%len(saltChars)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
