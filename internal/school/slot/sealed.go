package slot

import (
	"encoding/base64"
	"fmt"

	"github.com/campuskit/homeroom/pkg/cryptox"
)

// Sealed wraps another slot and encrypts values at rest. The persisted
// session token is a bearer credential; sealing it to a key derived from
// the machine secret makes a copied slot file useless on its own.
type Sealed struct {
	inner Slot
	key   []byte
}

// NewSealed wraps inner with AES-GCM sealing under key. The key must be 32
// bytes, typically cryptox.DeriveKey output.
func NewSealed(inner Slot, key []byte) *Sealed {
	return &Sealed{inner: inner, key: key}
}

func (s *Sealed) Get() (string, error) {
	stored, err := s.inner.Get()
	if err != nil {
		return "", err
	}

	sealed, err := base64.RawStdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("decode sealed slot: %w", err)
	}
	plain, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return "", fmt.Errorf("unseal slot: %w", err)
	}
	return string(plain), nil
}

func (s *Sealed) Set(value string) error {
	sealed, err := cryptox.Seal(s.key, []byte(value))
	if err != nil {
		return fmt.Errorf("seal slot: %w", err)
	}
	return s.inner.Set(base64.RawStdEncoding.EncodeToString(sealed))
}

func (s *Sealed) Remove() error {
	return s.inner.Remove()
}
