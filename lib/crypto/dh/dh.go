package dh

import (
	"math/big"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/ntcp1/lib/common/session_key"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// PrivateKey is a 256-byte DH exponent, I2P's encoding of a transport
// private key.
type PrivateKey [256]byte

// PublicKey is a 256-byte DH public value, g^x mod p.
type PublicKey [256]byte

// Public derives the public value corresponding to a private exponent.
func (k PrivateKey) Public() PublicKey {
	x := new(big.Int).SetBytes(k[:])
	y := new(big.Int).Exp(G, x, P)
	var pub PublicKey
	b := y.Bytes()
	copy(pub[256-len(b):], b)
	return pub
}

// Agree computes the 256-byte shared secret g^(xy) mod p for a local
// private exponent and a peer's public value.
func (k PrivateKey) Agree(peer PublicKey) ([256]byte, error) {
	x := new(big.Int).SetBytes(k[:])
	y := new(big.Int).SetBytes(peer[:])
	if y.Sign() <= 0 || y.Cmp(P) >= 0 {
		log.Warn("peer DH public value out of range")
		return [256]byte{}, oops.Errorf("dh: peer public value out of range")
	}
	secret := new(big.Int).Exp(y, x, P)
	var out [256]byte
	b := secret.Bytes()
	copy(out[256-len(b):], b)
	return out, nil
}

// AESKeyFromSecret reduces a 256-byte DH shared secret to the
// SessionKey NTCP derives its session ciphers from. CryptoPP treats
// the secret as a signed bignum; when its top bit is set, I2P
// prepends a zero byte and keeps only the first 31 bytes to strip the
// sign extension that would otherwise appear.
func AESKeyFromSecret(secret [256]byte) session_key.SessionKey {
	var key session_key.SessionKey
	if secret[0]&0x80 != 0 {
		copy(key[1:], secret[:31])
	} else {
		copy(key[:], secret[:32])
	}
	return key
}
