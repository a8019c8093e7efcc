package dsa

import (
	"testing"
	"math/big"
	"fmt"
)

func TestDebugPubPriv(t *testing.T) {
	var seed DSAPrivateKey
	priv, err := seed.Generate()
	if err != nil { t.Fatal(err) }
	p1 := createDSAPrivkey(new(big.Int).SetBytes(priv[:]))
	p2 := createDSAPrivkey(new(big.Int).SetBytes(priv[:]))
	fmt.Println("Y1 == Y2:", p1.Y.Cmp(p2.Y) == 0)
	fmt.Println("len Y bytes:", len(p1.Y.Bytes()))
	pub, err := priv.Public()
	if err != nil { t.Fatal(err) }
	fmt.Println("pub Y from struct matches recompute:", new(big.Int).SetBytes(pub[:]).Cmp(p1.Y) == 0)
}
