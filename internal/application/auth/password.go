package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Parameters of digests written before accounts moved to bcrypt.
const (
	legacySalt       = "salt"
	legacyIterations = 100000
	legacyKeyLen     = 32
)

// HashPassword returns a salted bcrypt digest.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPassword verifies password against a bcrypt or legacy PBKDF2 digest.
// legacy is true when the digest should be rehashed.
func CheckPassword(digest, password string) (ok, legacy bool) {
	if isLegacyDigest(digest) {
		sum := pbkdf2.Key([]byte(password), []byte(legacySalt), legacyIterations, legacyKeyLen, sha256.New)
		want, err := hex.DecodeString(strings.ToLower(digest))
		if err != nil {
			return false, false
		}
		return subtle.ConstantTimeCompare(sum, want) == 1, true
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil, false
}

// LegacyDigest computes the fixed-salt PBKDF2 digest used by old account records.
func LegacyDigest(password string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(legacySalt), legacyIterations, legacyKeyLen, sha256.New))
}

func isLegacyDigest(digest string) bool {
	if len(digest) != legacyKeyLen*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
