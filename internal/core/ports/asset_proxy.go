package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

// AssetProxy is an adapter able to transfer one class of assets.
type AssetProxy interface {
	// GetProxyID returns the tag of the asset descriptors handled.
	GetProxyID() domain.AssetProxyID
	// TransferFrom moves amount units of the asset described by assetData
	// from one owner to another, within the transaction carried by ctx.
	TransferFrom(
		ctx context.Context, assetData []byte, from, to common.Address,
		amount *uint256.Int,
	) error
}
