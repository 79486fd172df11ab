package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/aksara-server/internal/config"
	"github.com/dtroode/aksara-server/internal/model"
)

const (
	saltLength = 16
	keyLength  = 32
)

// ErrMalformedHash is returned when a stored value is not an Argon2id PHC string.
var ErrMalformedHash = errors.New("malformed argon2id hash")

var _ model.Hasher = (*Argon2)(nil)

// Argon2 hashes credentials with Argon2id and encodes them in PHC format:
// $argon2id$v=19$m=65536,t=3,p=2$salt$hash
type Argon2 struct {
	params config.KDF
}

func NewArgon2(params config.KDF) *Argon2 {
	return &Argon2{params: params}
}

func (a *Argon2) Hash(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, a.params.Time, a.params.MemKiB, a.params.Par, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.MemKiB,
		a.params.Time,
		a.params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters stored in encoded
// and compares it in constant time.
func (a *Argon2) Verify(secret, encoded string) (bool, error) {
	params, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(secret), salt, params.Time, params.MemKiB, params.Par, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func decode(encoded string) (config.KDF, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return config.KDF{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	var params config.KDF
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemKiB, &params.Time, &params.Par); err != nil {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if params.Time == 0 || params.Par == 0 {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return config.KDF{}, nil, nil, fmt.Errorf("%w: bad key encoding", ErrMalformedHash)
	}

	return params, salt, key, nil
}
