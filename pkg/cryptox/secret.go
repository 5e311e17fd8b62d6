// Package cryptox holds the small crypto helpers the daemon needs: the
// machine secret that anchors session-slot signing and sealing, and the
// initial password generation for roster accounts.
package cryptox

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for key derivation from the machine secret.
const (
	kdfMemory      = 19 * 1024 // KiB
	kdfIterations  = 2
	kdfParallelism = 1
	kdfKeyLength   = 32

	secretLength = 32
)

// LoadOrCreateSecret returns the machine secret stored at path, creating it
// on first run. The secret never leaves this machine; losing the file only
// costs the locally persisted session, which a re-login restores.
func LoadOrCreateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create secret dir: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		secret := make([]byte, secretLength)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}

		if err := os.WriteFile(path, secret, 0600); err != nil {
			return nil, fmt.Errorf("write secret: %w", err)
		}
		return secret, nil
	}

	secret, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}

	return secret, nil
}

// DeriveKey stretches the machine secret into a 32-byte key bound to a
// purpose label, so the same secret can safely back multiple uses without
// the derived keys being interchangeable.
func DeriveKey(secret []byte, purpose string) []byte {
	return argon2.IDKey(secret, []byte(purpose), kdfIterations, kdfMemory, kdfParallelism, kdfKeyLength)
}
