package assetproxy

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
)

type erc20Proxy struct {
	repoManager ports.RepoManager
}

// NewERC20Proxy returns the adapter for fungible tokens. Descriptors are
// made of the tag followed by the 20-byte token address.
func NewERC20Proxy(repoManager ports.RepoManager) ports.AssetProxy {
	return &erc20Proxy{repoManager}
}

func (p *erc20Proxy) GetProxyID() domain.AssetProxyID {
	return domain.AssetProxyIDERC20
}

func (p *erc20Proxy) TransferFrom(
	ctx context.Context, assetData []byte, from, to common.Address,
	amount *uint256.Int,
) error {
	asset, err := domain.DecodeERC20AssetData(assetData)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	repo := p.repoManager.BalanceRepository()
	fromBalance, err := repo.GetBalance(ctx, asset.TokenAddress, from)
	if err != nil {
		return err
	}
	newFromBalance, err := mathutil.Sub(fromBalance, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: %s holds %s of token %s, required %s", domain.ErrInsufficientBalance,
			from.Hex(), mathutil.ToString(fromBalance), asset.TokenAddress.Hex(),
			mathutil.ToString(amount),
		)
	}
	if from == to {
		return nil
	}

	toBalance, err := repo.GetBalance(ctx, asset.TokenAddress, to)
	if err != nil {
		return err
	}
	newToBalance, err := mathutil.Add(toBalance, amount)
	if err != nil {
		return err
	}

	if err := repo.SetBalance(ctx, asset.TokenAddress, from, newFromBalance); err != nil {
		return err
	}
	return repo.SetBalance(ctx, asset.TokenAddress, to, newToBalance)
}
