package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// SecretBox encrypts and decrypts short credential strings with AES-256-CTR.
// Ciphertext is stored as "ivHex:cipherHex" with a fresh random IV per
// encryption. The key is derived once at startup from a deployment-wide
// passphrase and never mutated afterwards.
type SecretBox struct {
	key []byte
}

// keyDerivationSalt is fixed: the passphrase itself is the deployment secret,
// the salt only separates this key from other PBKDF2 uses of the passphrase.
var keyDerivationSalt = []byte("jewelshop-tally-credentials")

const keyDerivationIters = 10000

// ErrMalformedCiphertext is returned when stored ciphertext is not in the
// expected ivHex:cipherHex shape.
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// NewSecretBox derives an AES-256 key from the given passphrase.
func NewSecretBox(passphrase string) (*SecretBox, error) {
	if passphrase == "" {
		return nil, errors.New("encryption passphrase cannot be empty")
	}
	key := pbkdf2.Key([]byte(passphrase), keyDerivationSalt, keyDerivationIters, 32, sha256.New)
	return &SecretBox{key: key}, nil
}

// Encrypt encrypts plaintext and returns it as ivHex:cipherHex.
func (b *SecretBox) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(b.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, []byte(plaintext))

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. An empty stored value decrypts to "".
func (b *SecretBox) Decrypt(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return "", ErrMalformedCiphertext
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrMalformedCiphertext
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(b.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)

	return string(plaintext), nil
}
