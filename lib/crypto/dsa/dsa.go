package dsa

import (
	"crypto/dsa"
	"io"
	"math/big"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// generateDSA draws a fresh 1024-bit DSA keypair under NTCP1's fixed
// domain parameters.
func generateDSA(rand io.Reader) (*dsa.PrivateKey, error) {
	log.Debug("Generating DSA key pair")
	priv := &dsa.PrivateKey{PublicKey: dsa.PublicKey{Parameters: param}}
	if err := dsa.GenerateKey(priv, rand); err != nil {
		log.WithError(err).Error("Failed to generate DSA key pair")
		return nil, err
	}
	log.Debug("DSA key pair generated successfully")
	return priv, nil
}

// createDSAPublicKey builds a stdlib dsa.PublicKey from the Y
// component carried in a RouterIdentity's signing key field.
func createDSAPublicKey(Y *big.Int) *dsa.PublicKey {
	return &dsa.PublicKey{
		Parameters: param,
		Y:          Y,
	}
}

// createDSAPrivkey builds a stdlib dsa.PrivateKey from a
// DSAPrivateKey's X component, deriving Y. Returns nil if X is not
// less than the group modulus p; no other range check is made.
func createDSAPrivkey(X *big.Int) (k *dsa.PrivateKey) {
	if X.Cmp(dsap) == -1 {
		Y := new(big.Int)
		Y.Exp(dsag, X, dsap)
		k = &dsa.PrivateKey{
			PublicKey: dsa.PublicKey{
				Parameters: param,
				Y:          Y,
			},
			X: X,
		}
	} else {
		log.Warn("Failed to create DSA private key: X is not less than p")
	}
	return
}
