package signature

import "fmt"

// SignatureType is the scheme tag, encoded as the trailing byte of every
// signature.
type SignatureType uint8

const (
	SignatureTypeIllegal SignatureType = iota
	SignatureTypeInvalid
	SignatureTypeEIP712
	SignatureTypeEthSign
	SignatureTypeWallet
	SignatureTypeValidator
	SignatureTypePreSigned
)

var signatureTypeToString = map[SignatureType]string{
	SignatureTypeIllegal:   "Illegal",
	SignatureTypeInvalid:   "Invalid",
	SignatureTypeEIP712:    "EIP712",
	SignatureTypeEthSign:   "EthSign",
	SignatureTypeWallet:    "Wallet",
	SignatureTypeValidator: "Validator",
	SignatureTypePreSigned: "PreSigned",
}

func (t SignatureType) String() string {
	if s, ok := signatureTypeToString[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

const (
	// ecSignatureLength is v (1) + r (32) + s (32).
	ecSignatureLength = 65
	// ethSignPrefix is prepended to the hash signed with EthSign signatures.
	ethSignPrefix = "\x19Ethereum Signed Message:\n32"
)
