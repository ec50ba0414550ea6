package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"talentmatch_backend/pkg/apperrors"
)

// bcrypt refuses input longer than 72 bytes; both back-ends truncate
// silently at this layer. Length validation happens in ValidatePassword.
const maxPasswordBytes = 72

// Digest prefix of the primary back-end. Legacy digests are raw bcrypt
// ($2a$/$2b$) and carry no prefix.
const bcryptSHA256Prefix = "$bcrypt-sha256$"

// PasswordHasher hashes with the primary back-end (bcrypt over a SHA-256
// pre-hash) and verifies against both it and the legacy direct-bcrypt format
// still present in storage. Stateless; inject one instance at startup.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// NewPasswordHasherWithCost overrides the bcrypt work factor.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash produces a primary-format digest.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(preHash(truncate(password)), h.cost)
	if err != nil {
		return "", err
	}
	return bcryptSHA256Prefix + string(digest), nil
}

// Verify checks the password against a digest from either back-end. Any
// internal failure (malformed digest, unknown format) reads as a mismatch so
// authentication errors stay indistinguishable from wrong credentials.
func (h *PasswordHasher) Verify(password, digest string) bool {
	pw := truncate(password)

	if wrapped, ok := strings.CutPrefix(digest, bcryptSHA256Prefix); ok {
		if bcrypt.CompareHashAndPassword([]byte(wrapped), preHash(pw)) == nil {
			return true
		}
	}

	// Legacy back-end: direct bcrypt over the (truncated) password.
	return bcrypt.CompareHashAndPassword([]byte(digest), pw) == nil
}

// preHash folds arbitrary-length input into a fixed 44-byte string, the same
// trick the wrapped scheme uses to dodge bcrypt's 72-byte ceiling.
func preHash(password []byte) []byte {
	sum := sha256.Sum256(password)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// ValidatePasswordLength rejects input the hashing layer would silently
// truncate. Used at login, where strength rules do not apply.
func ValidatePasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return apperrors.ErrPasswordTooLong
	}
	return nil
}

// ValidatePassword enforces registration-time strength rules: at least 8
// characters with one letter and one digit, at most 72 bytes UTF-8.
func ValidatePassword(password string) error {
	if password == "" {
		return apperrors.WeakPasswordError("Password must not be empty")
	}
	if len([]rune(password)) < 8 {
		return apperrors.WeakPasswordError("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		return apperrors.ErrPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return apperrors.WeakPasswordError("Password must contain at least one letter")
	}
	if !hasDigit {
		return apperrors.WeakPasswordError("Password must contain at least one digit")
	}
	return nil
}
