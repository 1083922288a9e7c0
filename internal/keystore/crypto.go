package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	saltSize         = 16
	pbkdf2Iterations = 100000
)

// cipherBox seals values with a key derived from a passphrase
type cipherBox struct {
	key []byte
}

func newCipherBox(passphrase string, salt []byte) *cipherBox {
	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)
	return &cipherBox{key: key}
}

func generateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func (c *cipherBox) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal returns base64(nonce || ciphertext). The key name is bound as
// additional data so entries cannot be swapped between keys.
func (c *cipherBox) seal(name string, plaintext []byte) (string, error) {
	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, []byte(name))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *cipherBox) open(name, encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	gcm, err := c.gcm()
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], []byte(name))
	if err != nil {
		return nil, errors.New("decryption failed: wrong passphrase or corrupted data")
	}
	return plaintext, nil
}
