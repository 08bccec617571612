package dbbadger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Amounts are stored as 32-byte big endian words, addresses and hashes as
// hex strings.

type filledAmount struct {
	OrderHash string
	Amount    []byte
}

type cancelledOrder struct {
	OrderHash string
}

type makerEpoch struct {
	Maker string
	Epoch []byte
}

type preSignature struct {
	Hash   string
	Signer string
}

type validatorApproval struct {
	Signer    string
	Validator string
	Approved  bool
}

type tokenBalance struct {
	Token  string
	Owner  string
	Amount []byte
}

type tokenOwner struct {
	Token   string
	TokenID string
	Owner   string
}

func encodeAmount(n *uint256.Int) []byte {
	if n == nil {
		n = new(uint256.Int)
	}
	buf := n.Bytes32()
	return buf[:]
}

func decodeAmount(buf []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(buf)
}

func pairKey(a, b string) string {
	return a + ":" + b
}

func tokenIDKey(id *uint256.Int) string {
	return common.BytesToHash(encodeAmount(id)).Hex()
}
