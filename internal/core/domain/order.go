package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// OrderHash is the 256-bit digest identifying an order in the ledger.
type OrderHash = common.Hash

// Order is a maker's signed intent to exchange one asset for another. It is
// supplied by the caller on every invocation and never stored verbatim.
type Order struct {
	MakerAddress          common.Address
	TakerAddress          common.Address
	FeeRecipientAddress   common.Address
	SenderAddress         common.Address
	MakerAssetAmount      uint256.Int
	TakerAssetAmount      uint256.Int
	MakerFee              uint256.Int
	TakerFee              uint256.Int
	ExpirationTimeSeconds uint256.Int
	Salt                  uint256.Int
	MakerAssetData        []byte
	TakerAssetData        []byte
}

// HasValidAmounts returns whether both the maker and taker amounts are not
// zero. A zero taker amount would make the order indistinguishable from a
// fully filled one, while a zero maker amount would lead to an unbounded
// price.
func (o Order) HasValidAmounts() bool {
	return !o.MakerAssetAmount.IsZero() && !o.TakerAssetAmount.IsZero()
}

// IsTakerRestricted returns whether only a specific taker can fill the order.
func (o Order) IsTakerRestricted() bool {
	return o.TakerAddress != (common.Address{})
}

// IsSenderRestricted returns whether only a specific sender can submit
// operations for the order.
func (o Order) IsSenderRestricted() bool {
	return o.SenderAddress != (common.Address{})
}

// OrderHasher computes the structural hash of orders for a given exchange
// deployment.
type OrderHasher struct {
	domainHash common.Hash
}

// NewOrderHasher returns an OrderHasher whose domain separator commits to the
// given exchange address.
func NewOrderHasher(exchangeAddress common.Address) OrderHasher {
	domainHash := crypto.Keccak256Hash(
		DomainTypeHash.Bytes(),
		crypto.Keccak256([]byte(ExchangeDomainName)),
		crypto.Keccak256([]byte(ExchangeDomainVersion)),
		common.LeftPadBytes(exchangeAddress.Bytes(), 32),
	)
	return OrderHasher{domainHash}
}

// DomainHash returns the domain separator.
func (h OrderHasher) DomainHash() common.Hash {
	return h.domainHash
}

// Hash returns the hash of the given order. Every field is encoded in a
// fixed-size 32-byte word, dynamic byte fields are committed through their
// keccak256 hash.
func (h OrderHasher) Hash(order Order) OrderHash {
	structHash := crypto.Keccak256(
		OrderTypeHash.Bytes(),
		common.LeftPadBytes(order.MakerAddress.Bytes(), 32),
		common.LeftPadBytes(order.TakerAddress.Bytes(), 32),
		common.LeftPadBytes(order.FeeRecipientAddress.Bytes(), 32),
		common.LeftPadBytes(order.SenderAddress.Bytes(), 32),
		word(&order.MakerAssetAmount),
		word(&order.TakerAssetAmount),
		word(&order.MakerFee),
		word(&order.TakerFee),
		word(&order.ExpirationTimeSeconds),
		word(&order.Salt),
		crypto.Keccak256(order.MakerAssetData),
		crypto.Keccak256(order.TakerAssetData),
	)

	return crypto.Keccak256Hash(
		[]byte{0x19, 0x01},
		h.domainHash.Bytes(),
		structHash,
	)
}

func word(n *uint256.Int) []byte {
	b := n.Bytes32()
	return b[:]
}
