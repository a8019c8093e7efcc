package config

import (
	"encoding/hex"
	"os"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/go-i2p/ntcp1/lib/crypto/dh"
	"github.com/go-i2p/ntcp1/lib/crypto/dsa"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// identityFile is the on-disk (hex-encoded) shape of a local router's
// key material, as loaded from IdentityPath.
type identityFile struct {
	DHPrivateKey  string `yaml:"dh_private_key"`
	DSAPrivateKey string `yaml:"dsa_private_key"`
}

// LocalIdentity holds a local router's private keys, derived public
// RouterIdentity, and signing capability.
type LocalIdentity struct {
	dhPrivate  dh.PrivateKey
	dsaPrivate dsa.DSAPrivateKey
	identity   routeridentity.RouterIdentity
}

// LoadLocalIdentity reads and decodes a local identity file: YAML
// with a hex-encoded 256-byte dh_private_key and a hex-encoded
// 20-byte dsa_private_key.
func LoadLocalIdentity(path string) (*LocalIdentity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("config: failed to read identity file %s: %w", path, err)
	}
	var f identityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, oops.Errorf("config: failed to parse identity file %s: %w", path, err)
	}

	dhBytes, err := hex.DecodeString(f.DHPrivateKey)
	if err != nil || len(dhBytes) != 256 {
		return nil, oops.Errorf("config: identity file %s has malformed dh_private_key", path)
	}
	dsaBytes, err := hex.DecodeString(f.DSAPrivateKey)
	if err != nil || len(dsaBytes) != 20 {
		return nil, oops.Errorf("config: identity file %s has malformed dsa_private_key", path)
	}

	li := &LocalIdentity{}
	copy(li.dhPrivate[:], dhBytes)
	copy(li.dsaPrivate[:], dsaBytes)

	dsaPub, err := li.dsaPrivate.Public()
	if err != nil {
		return nil, oops.Errorf("config: failed to derive dsa public key: %w", err)
	}

	li.identity.PublicKey = li.dhPrivate.Public()
	li.identity.SigningKey = dsaPub
	return li, nil
}

// PrivateKey implements ntcp.RouterContext.
func (li *LocalIdentity) PrivateKey() [256]byte {
	return li.dhPrivate
}

// RouterIdentity implements ntcp.RouterContext.
func (li *LocalIdentity) RouterIdentity() routeridentity.RouterIdentity {
	return li.identity
}

// Sign implements ntcp.RouterContext.
func (li *LocalIdentity) Sign(msg []byte) ([]byte, error) {
	return li.dsaPrivate.Sign(msg)
}
