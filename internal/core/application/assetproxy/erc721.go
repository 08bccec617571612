package assetproxy

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

var one = uint256.NewInt(1)

type erc721Proxy struct {
	repoManager ports.RepoManager
}

// NewERC721Proxy returns the adapter for non fungible tokens. Descriptors
// are made of the tag, the 20-byte token address and the 32-byte token id.
// Instances are not fungible, therefore the transferred amount must always
// be exactly 1.
func NewERC721Proxy(repoManager ports.RepoManager) ports.AssetProxy {
	return &erc721Proxy{repoManager}
}

func (p *erc721Proxy) GetProxyID() domain.AssetProxyID {
	return domain.AssetProxyIDERC721
}

func (p *erc721Proxy) TransferFrom(
	ctx context.Context, assetData []byte, from, to common.Address,
	amount *uint256.Int,
) error {
	if !amount.Eq(one) {
		return domain.ErrInvalidNonFungibleAmount
	}
	asset, err := domain.DecodeERC721AssetData(assetData)
	if err != nil {
		return err
	}

	if to == (common.Address{}) {
		return domain.ErrInvalidTokenRecipient
	}

	repo := p.repoManager.BalanceRepository()
	owner, err := repo.GetOwner(ctx, asset.TokenAddress, asset.TokenID)
	if err != nil {
		return err
	}
	// The zero owner marks an instance that was never minted.
	if owner == (common.Address{}) || owner != from {
		return domain.ErrNotTokenOwner
	}
	return repo.SetOwner(ctx, asset.TokenAddress, asset.TokenID, to)
}
