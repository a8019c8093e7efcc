package ntcp

import (
	"crypto/rand"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/go-i2p/ntcp1/lib/crypto/dh"
	"github.com/go-i2p/ntcp1/lib/crypto/dsa"
)

// fixtureRouter is a self-contained RouterContext for tests: a fresh
// random DH key and a fresh DSA signing key per instance.
type fixtureRouter struct {
	dhPriv  dh.PrivateKey
	dsaPriv dsa.DSAPrivateKey
	ident   routeridentity.RouterIdentity
}

func newFixtureRouter() (*fixtureRouter, error) {
	var dhPriv dh.PrivateKey
	if _, err := rand.Read(dhPriv[:]); err != nil {
		return nil, err
	}

	var seed dsa.DSAPrivateKey
	dsaPriv, err := seed.Generate()
	if err != nil {
		return nil, err
	}
	dsaPub, err := dsaPriv.Public()
	if err != nil {
		return nil, err
	}

	fr := &fixtureRouter{dhPriv: dhPriv, dsaPriv: dsaPriv}
	fr.ident.PublicKey = dhPriv.Public()
	fr.ident.SigningKey = dsaPub
	return fr, nil
}

func (r *fixtureRouter) PrivateKey() [256]byte {
	return r.dhPriv
}

func (r *fixtureRouter) RouterIdentity() routeridentity.RouterIdentity {
	return r.ident
}

func (r *fixtureRouter) Sign(msg []byte) ([]byte, error) {
	return r.dsaPriv.Sign(msg)
}
