package signature

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Sign returns the signature of hash made with key, serialized as
// v||r||s||type. Only EIP712 and EthSign signatures can be produced.
func Sign(
	key *btcec.PrivateKey, hash common.Hash, sigType SignatureType,
) ([]byte, error) {
	var digest []byte
	switch sigType {
	case SignatureTypeEIP712:
		digest = hash.Bytes()
	case SignatureTypeEthSign:
		digest = crypto.Keccak256([]byte(ethSignPrefix), hash.Bytes())
	default:
		return nil, fmt.Errorf("cannot sign with signature type %s", sigType)
	}

	// Signing for the uncompressed key makes v either 27 or 28.
	sig, err := ecdsa.SignCompact(key, digest, false)
	if err != nil {
		return nil, err
	}
	return append(sig, byte(sigType)), nil
}
