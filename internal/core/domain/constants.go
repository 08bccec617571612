package domain

import "github.com/ethereum/go-ethereum/crypto"

const (
	// ExchangeDomainName is the name of the protocol used in the hash domain
	// separator.
	ExchangeDomainName = "0x Protocol"
	// ExchangeDomainVersion is the version of the protocol used in the hash
	// domain separator.
	ExchangeDomainVersion = "2"
)

var (
	// DomainTypeHash is the keccak256 hash of the domain separator schema.
	DomainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,address verifyingContract)",
	))
	// OrderTypeHash is the keccak256 hash of the order schema.
	OrderTypeHash = crypto.Keccak256Hash([]byte(
		"Order(" +
			"address makerAddress," +
			"address takerAddress," +
			"address feeRecipientAddress," +
			"address senderAddress," +
			"uint256 makerAssetAmount," +
			"uint256 takerAssetAmount," +
			"uint256 makerFee," +
			"uint256 takerFee," +
			"uint256 expirationTimeSeconds," +
			"uint256 salt," +
			"bytes makerAssetData," +
			"bytes takerAssetData" +
			")",
	))
)
