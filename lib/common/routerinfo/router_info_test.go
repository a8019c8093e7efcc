package routerinfo

import (
	"testing"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/stretchr/testify/require"
)

func TestStaticImplementsRouterInfo(t *testing.T) {
	var ident routeridentity.RouterIdentity
	ident.PublicKey[0] = 0x42

	s := Static{Identity: ident, Address: "127.0.0.1:12345"}
	var _ RouterInfo = s

	require.Equal(t, ident, s.RouterIdentity())
	require.Equal(t, ident.IdentHash(), s.IdentHash())

	addr, ok := s.NTCPAddress()
	require.True(t, ok)
	require.Equal(t, "127.0.0.1:12345", addr)
}

func TestStaticNoAddressPublished(t *testing.T) {
	s := Static{}
	_, ok := s.NTCPAddress()
	require.False(t, ok)
}
