package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AssetProxyID is the leading byte of an asset descriptor, it identifies the
// adapter able to decode and transfer the asset.
type AssetProxyID uint8

const (
	AssetProxyIDERC20  AssetProxyID = 1
	AssetProxyIDERC721 AssetProxyID = 2

	// ERC20AssetDataLength is tag + token address.
	ERC20AssetDataLength = 1 + common.AddressLength
	// ERC721AssetDataLength is tag + token address + token id.
	ERC721AssetDataLength = 1 + common.AddressLength + 32
)

func (id AssetProxyID) String() string {
	switch id {
	case AssetProxyIDERC20:
		return "ERC20"
	case AssetProxyIDERC721:
		return "ERC721"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(id))
	}
}

// GetAssetProxyID returns the tag of the given asset descriptor.
func GetAssetProxyID(assetData []byte) (AssetProxyID, error) {
	if len(assetData) <= 0 {
		return 0, ErrInvalidAssetDataLength
	}
	return AssetProxyID(assetData[0]), nil
}

// ERC20AssetData identifies a fungible token.
type ERC20AssetData struct {
	TokenAddress common.Address
}

// EncodeERC20AssetData ...
func EncodeERC20AssetData(token common.Address) []byte {
	buf := make([]byte, 0, ERC20AssetDataLength)
	buf = append(buf, byte(AssetProxyIDERC20))
	return append(buf, token.Bytes()...)
}

// DecodeERC20AssetData ...
func DecodeERC20AssetData(assetData []byte) (*ERC20AssetData, error) {
	if len(assetData) != ERC20AssetDataLength {
		return nil, ErrInvalidAssetDataLength
	}
	if AssetProxyID(assetData[0]) != AssetProxyIDERC20 {
		return nil, ErrAssetProxyMismatch
	}
	return &ERC20AssetData{
		TokenAddress: common.BytesToAddress(assetData[1:]),
	}, nil
}

// ERC721AssetData identifies a single instance of a non fungible token.
type ERC721AssetData struct {
	TokenAddress common.Address
	TokenID      *uint256.Int
}

// EncodeERC721AssetData ...
func EncodeERC721AssetData(token common.Address, tokenID *uint256.Int) []byte {
	id := tokenID.Bytes32()
	buf := make([]byte, 0, ERC721AssetDataLength)
	buf = append(buf, byte(AssetProxyIDERC721))
	buf = append(buf, token.Bytes()...)
	return append(buf, id[:]...)
}

// DecodeERC721AssetData ...
func DecodeERC721AssetData(assetData []byte) (*ERC721AssetData, error) {
	if len(assetData) != ERC721AssetDataLength {
		return nil, ErrInvalidAssetDataLength
	}
	if AssetProxyID(assetData[0]) != AssetProxyIDERC721 {
		return nil, ErrAssetProxyMismatch
	}
	return &ERC721AssetData{
		TokenAddress: common.BytesToAddress(assetData[1 : 1+common.AddressLength]),
		TokenID:      new(uint256.Int).SetBytes(assetData[1+common.AddressLength:]),
	}, nil
}
