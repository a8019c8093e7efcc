package config

import (
	"encoding/hex"
	"os"
	"sync"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/go-i2p/ntcp1/lib/common/routerinfo"
	"github.com/go-i2p/ntcp1/lib/util"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// peerFile is the on-disk shape of one known peer, as loaded from
// PeersPath.
type peerFile struct {
	Name       string `yaml:"name"`
	DHPublic   string `yaml:"dh_public_key"`
	DSAPublic  string `yaml:"dsa_public_key"`
	NTCPAddr   string `yaml:"ntcp_address"`
}

// PeerBook is an in-memory, mutex-guarded directory of known router
// identities, keyed by IdentHash, resolved by the acceptor and dialed
// by the connector.
type PeerBook struct {
	mu   sync.RWMutex
	byID map[routeridentity.IdentHash]routerinfo.Static
}

// LoadPeerBook reads a peers file: a YAML list of entries with a
// name, a hex-encoded 256-byte dh_public_key, a hex-encoded 128-byte
// dsa_public_key and an ntcp_address. A missing file is not an error: a router
// with no configured peers can still accept inbound connections, so
// this returns an empty book rather than failing startup.
func LoadPeerBook(path string) (*PeerBook, error) {
	if !util.CheckFileExists(path) {
		return &PeerBook{byID: make(map[routeridentity.IdentHash]routerinfo.Static)}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("config: failed to read peers file %s: %w", path, err)
	}
	var files []peerFile
	if err := yaml.Unmarshal(raw, &files); err != nil {
		return nil, oops.Errorf("config: failed to parse peers file %s: %w", path, err)
	}

	pb := &PeerBook{byID: make(map[routeridentity.IdentHash]routerinfo.Static, len(files))}
	for _, f := range files {
		dhBytes, err := hex.DecodeString(f.DHPublic)
		if err != nil || len(dhBytes) != routeridentity.PublicKeySize {
			return nil, oops.Errorf("config: peer %q has malformed dh_public_key", f.Name)
		}
		dsaBytes, err := hex.DecodeString(f.DSAPublic)
		if err != nil || len(dsaBytes) != routeridentity.SigningKeySize {
			return nil, oops.Errorf("config: peer %q has malformed dsa_public_key", f.Name)
		}

		var ident routeridentity.RouterIdentity
		copy(ident.PublicKey[:], dhBytes)
		copy(ident.SigningKey[:], dsaBytes)

		pb.byID[ident.IdentHash()] = routerinfo.Static{Identity: ident, Address: f.NTCPAddr}
	}
	return pb, nil
}

// Resolve implements the lookup signature ntcp.Acceptor.Resolve
// expects.
func (pb *PeerBook) Resolve(h routeridentity.IdentHash) (routeridentity.RouterIdentity, bool) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()
	info, ok := pb.byID[h]
	if !ok {
		return routeridentity.RouterIdentity{}, false
	}
	return info.Identity, true
}

// Get returns the full RouterInfo fixture for a known peer, looked up
// by IdentHash; lookup by name is not supported. Callers pass its
// Identity to Connector.Dial.
func (pb *PeerBook) Get(h routeridentity.IdentHash) (routerinfo.Static, bool) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()
	info, ok := pb.byID[h]
	return info, ok
}
