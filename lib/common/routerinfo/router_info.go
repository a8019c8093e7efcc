// Package routerinfo wraps the narrow slice of a router's published
// contact information that the transport layer actually needs: its
// identity and the host:port an NTCP1 peer dials. The full RouterInfo
// structure (capabilities, options, multiple addresses, signature
// over the whole blob) lives in the network database, outside this
// module's scope; callers adapt whatever they already have into this
// shape.
package routerinfo

import (
	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
)

// RouterInfo is the minimal view of a remote router the transport
// needs to dial and authenticate it.
type RouterInfo interface {
	// RouterIdentity returns the router's DH and DSA public keys.
	RouterIdentity() routeridentity.RouterIdentity

	// IdentHash returns the SHA-256 of the router's canonical
	// RouterIdentity encoding.
	IdentHash() routeridentity.IdentHash

	// NTCPAddress returns the host:port an initiator dials to reach
	// this router over NTCP1, and whether it publishes one at all.
	NTCPAddress() (addr string, ok bool)
}

// Static is a fixed RouterInfo, sufficient for configuration-file or
// test-fixture supplied peers that never change mid-run.
type Static struct {
	Identity routeridentity.RouterIdentity
	Address  string
}

func (s Static) RouterIdentity() routeridentity.RouterIdentity {
	return s.Identity
}

func (s Static) IdentHash() routeridentity.IdentHash {
	return s.Identity.IdentHash()
}

func (s Static) NTCPAddress() (string, bool) {
	return s.Address, s.Address != ""
}
