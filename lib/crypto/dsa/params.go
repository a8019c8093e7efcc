package dsa

import (
	"crypto/dsa"
	"math/big"
)

const pHex = "" +
	"9c05b2aa960d9b97b8931963c9cc9e8c3026e9b8ed92fad0a69cc886d5bf8015" +
	"fcadae31a0ad18fab3f01b00a358de237655c4964afaa2b337e96ad316b9fb1c" +
	"c564b5aec5b69a9ff6c3e4548707fef8503d91dd8602e867e6d35d2235c1869c" +
	"e2479c3b9d5401de04e0727fb33d6511285d4cf29538d9e3b6051f5b22cc1c93"

const qHex = "" +
	"a5dfc28fef4ca1e286744cd8eed9d29d684046b7"

const gHex = "" +
	"0c1f4d27d40093b429e962d7223824e0bbc47e7c832a39236fc683af84889581" +
	"075ff9082ed32353d4374d7301cda1d23c431f4698599dda02451824ff369752" +
	"593647cc3ddc197de985e43d136cdcfc6bd5409cd2f450821142a5e6f8eb1c3a" +
	"b5d0484b8129fcf17bce4f7f33321c3cb3dbb14a905e7b2b3e93be4708cbcc82"

var (
	dsap = mustHex(pHex)
	dsaq = mustHex(qHex)
	dsag = mustHex(gHex)

	// param is the shared (P, Q, G) I2P uses for every router's
	// 1024-bit DSA signing key.
	param = dsa.Parameters{P: dsap, Q: dsaq, G: dsag}
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("dsa: invalid group constant")
	}
	return n
}
