package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-i2p/ntcp1/lib/crypto/dsa"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeIdentityFile(t *testing.T, dhPriv [256]byte, dsaPriv dsa.DSAPrivateKey) string {
	t.Helper()
	f := identityFile{
		DHPrivateKey:  hex.EncodeToString(dhPriv[:]),
		DSAPrivateKey: hex.EncodeToString(dsaPriv[:]),
	}
	raw, err := yaml.Marshal(f)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "identity.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadLocalIdentity(t *testing.T) {
	var dhPriv [256]byte
	dhPriv[255] = 0x07

	var seed dsa.DSAPrivateKey
	dsaPriv, err := seed.Generate()
	require.NoError(t, err)

	path := writeIdentityFile(t, dhPriv, dsaPriv)

	li, err := LoadLocalIdentity(path)
	require.NoError(t, err)
	require.Equal(t, dhPriv, li.PrivateKey())

	wantPub, err := dsaPriv.Public()
	require.NoError(t, err)
	require.Equal(t, wantPub, li.RouterIdentity().SigningKey)

	sig, err := li.Sign([]byte("hello"))
	require.NoError(t, err)
	require.NotEmpty(t, sig)
}

func TestLoadLocalIdentityMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dh_private_key: zz\ndsa_private_key: zz\n"), 0o600))

	_, err := LoadLocalIdentity(path)
	require.Error(t, err)
}

func TestLoadLocalIdentityMissingFile(t *testing.T) {
	_, err := LoadLocalIdentity(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
