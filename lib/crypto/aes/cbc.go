// Package aes implements the stateful AES-256-CBC ciphers NTCP keys
// during its handshake and then runs, unchanged, for the life of a
// session. Unlike a one-shot CBC helper, the encrypter and decrypter
// here keep their cipher.BlockMode alive across calls, so the IV used
// for message N+1 is the last ciphertext block of message N — exactly
// the chaining the wire protocol relies on once Phase2 has been sent.
package aes

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/ntcp1/lib/common/session_key"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// CBCEncrypter holds AES-CBC encryption state across many calls.
type CBCEncrypter struct {
	mode cipher.BlockMode
}

// CBCDecrypter holds AES-CBC decryption state across many calls.
type CBCDecrypter struct {
	mode cipher.BlockMode
}

// NewCBCEncrypter keys an encrypter with a SessionKey and a 16-byte
// bootstrap IV. All later calls to Process chain from the previous
// call's last ciphertext block.
func NewCBCEncrypter(key session_key.SessionKey, iv []byte) (*CBCEncrypter, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		log.WithError(err).Error("failed to create AES cipher for encryption")
		return nil, err
	}
	return &CBCEncrypter{mode: cipher.NewCBCEncrypter(block, iv)}, nil
}

// NewCBCDecrypter keys a decrypter with a SessionKey and a 16-byte
// bootstrap IV.
func NewCBCDecrypter(key session_key.SessionKey, iv []byte) (*CBCDecrypter, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		log.WithError(err).Error("failed to create AES cipher for decryption")
		return nil, err
	}
	return &CBCDecrypter{mode: cipher.NewCBCDecrypter(block, iv)}, nil
}

// Process encrypts src into dst in place across 16-byte blocks,
// advancing the chained IV. len(src) must be a non-zero multiple of
// the AES block size.
func (e *CBCEncrypter) Process(dst, src []byte) error {
	if len(src) == 0 || len(src)%aes.BlockSize != 0 {
		return oops.Errorf("aes: data length %d is not a positive multiple of the block size", len(src))
	}
	e.mode.CryptBlocks(dst, src)
	return nil
}

// Process decrypts src into dst in place across 16-byte blocks,
// advancing the chained IV. len(src) must be a non-zero multiple of
// the AES block size.
func (d *CBCDecrypter) Process(dst, src []byte) error {
	if len(src) == 0 || len(src)%aes.BlockSize != 0 {
		return oops.Errorf("aes: data length %d is not a positive multiple of the block size", len(src))
	}
	d.mode.CryptBlocks(dst, src)
	return nil
}
