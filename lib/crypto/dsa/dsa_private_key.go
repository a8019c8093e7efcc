package dsa

import (
	"crypto/dsa"
	"crypto/rand"
	"crypto/sha1"
	"math/big"

	"github.com/go-i2p/ntcp1/lib/crypto/types"
)

// DSAPrivateKey is the 20-byte X component of an NTCP1 router's
// 1024-bit DSA signing key.
type DSAPrivateKey [20]byte

// Sign produces the 40-byte r||s signature NTCP1's phase3 and phase4
// messages carry: SHA-1 of msg, signed with this key. NTCP1 negotiates
// no other signing algorithm, so unlike the multi-algorithm Signer
// this key type replaced, there is no separate hashed-vs-unhashed
// entry point to keep around.
func (k DSAPrivateKey) Sign(msg []byte) ([]byte, error) {
	priv := createDSAPrivkey(new(big.Int).SetBytes(k[:]))
	if priv == nil {
		log.Error("Invalid DSA private key format")
		return nil, types.ErrInvalidKeyFormat
	}
	h := sha1.Sum(msg)
	r, s, err := dsa.Sign(rand.Reader, priv, h[:])
	if err != nil {
		log.WithError(err).Error("Failed to create DSA signature")
		return nil, err
	}
	sig := make([]byte, 40)
	rb := r.Bytes()
	copy(sig[20-len(rb):20], rb)
	sb := s.Bytes()
	copy(sig[20+(20-len(sb)):], sb)
	log.WithField("sig_length", len(sig)).Debug("DSA signature created successfully")
	return sig, nil
}

func (k DSAPrivateKey) Public() (pk DSAPublicKey, err error) {
	p := createDSAPrivkey(new(big.Int).SetBytes(k[:]))
	if p == nil {
		log.Error("Invalid DSA private key format")
		err = types.ErrInvalidKeyFormat
	} else {
		yb := p.Y.Bytes()
		copy(pk[len(pk)-len(yb):], yb)
		log.Debug("DSA public key derived successfully")
	}
	return
}

func (k DSAPrivateKey) Len() int {
	return len(k)
}

// Generate draws a fresh 1024-bit DSA keypair under NTCP1's domain
// parameters and returns its private component. The receiver value is
// ignored; callers typically start from a zero DSAPrivateKey.
func (k DSAPrivateKey) Generate() (DSAPrivateKey, error) {
	priv, err := generateDSA(rand.Reader)
	if err != nil {
		return DSAPrivateKey{}, err
	}
	var out DSAPrivateKey
	xb := priv.X.Bytes()
	copy(out[20-len(xb):], xb)
	return out, nil
}
