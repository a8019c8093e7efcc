package dsa

import (
	"crypto/dsa"
	"crypto/sha1"
	"math/big"

	"github.com/go-i2p/ntcp1/lib/crypto/types"
)

// DSAPublicKey is the 128-byte Y component of a peer's 1024-bit DSA
// signing key, as carried in a RouterIdentity.
type DSAPublicKey [128]byte

func (k DSAPublicKey) Bytes() []byte {
	return k[:]
}

// Verify checks a 40-byte r||s signature produced by the matching
// DSAPrivateKey.Sign against SHA-1 of msg.
func (k DSAPublicKey) Verify(msg, sig []byte) error {
	if len(sig) != 40 {
		log.Error("Bad DSA signature size")
		return types.ErrBadSignatureSize
	}
	pub := createDSAPublicKey(new(big.Int).SetBytes(k[:]))
	h := sha1.Sum(msg)
	r := new(big.Int).SetBytes(sig[:20])
	s := new(big.Int).SetBytes(sig[20:])
	if !dsa.Verify(pub, h[:], r, s) {
		log.Warn("Invalid DSA signature")
		return types.ErrInvalidSignature
	}
	log.Debug("DSA signature verified successfully")
	return nil
}

func (k DSAPublicKey) Len() int {
	return len(k)
}
