package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadPeerBook(t *testing.T) {
	dh := make([]byte, 256)
	dh[0] = 0x11
	dsaPub := make([]byte, 128)
	dsaPub[0] = 0x22

	files := []peerFile{{
		Name:      "alice",
		DHPublic:  hex.EncodeToString(dh),
		DSAPublic: hex.EncodeToString(dsaPub),
		NTCPAddr:  "10.0.0.1:12345",
	}}
	raw, err := yaml.Marshal(files)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "peers.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	pb, err := LoadPeerBook(path)
	require.NoError(t, err)

	var wantPub [256]byte
	copy(wantPub[:], dh)
	var wantSign [128]byte
	copy(wantSign[:], dsaPub)

	var wantHash [32]byte
	for h, info := range pb.byID {
		wantHash = h
		require.Equal(t, wantPub, info.Identity.PublicKey)
		require.Equal(t, wantSign, info.Identity.SigningKey)
		require.Equal(t, "10.0.0.1:12345", info.Address)
	}

	ident, ok := pb.Resolve(wantHash)
	require.True(t, ok)
	require.Equal(t, wantPub, ident.PublicKey)
}

func TestLoadPeerBookMissingFileIsEmpty(t *testing.T) {
	pb, err := LoadPeerBook(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, ok := pb.Resolve([32]byte{})
	require.False(t, ok)
}

func TestLoadPeerBookMalformedKey(t *testing.T) {
	files := []peerFile{{
		Name:      "bob",
		DHPublic:  "not-hex",
		DSAPublic: hex.EncodeToString(make([]byte, 128)),
		NTCPAddr:  "10.0.0.2:12345",
	}}
	raw, err := yaml.Marshal(files)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "peers.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = LoadPeerBook(path)
	require.Error(t, err)
}
