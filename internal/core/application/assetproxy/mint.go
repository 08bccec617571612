package assetproxy

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
)

// Mint credits amount units of a fungible token to the given owner.
func (s *Service) Mint(
	ctx context.Context, token, to common.Address, amount *uint256.Int,
) (*uint256.Int, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			repo := s.repoManager.BalanceRepository()
			balance, err := repo.GetBalance(ctx, token, to)
			if err != nil {
				return nil, err
			}
			newBalance, err := mathutil.Add(balance, amount)
			if err != nil {
				return nil, err
			}
			if err := repo.SetBalance(ctx, token, to, newBalance); err != nil {
				return nil, err
			}
			return newBalance, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*uint256.Int), nil
}

// MintNonFungible assigns a new instance of a non fungible token to the
// given owner.
func (s *Service) MintNonFungible(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
	to common.Address,
) error {
	if to == (common.Address{}) {
		return domain.ErrInvalidTokenRecipient
	}

	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			repo := s.repoManager.BalanceRepository()
			owner, err := repo.GetOwner(ctx, token, tokenID)
			if err != nil {
				return nil, err
			}
			if owner != (common.Address{}) {
				return nil, domain.ErrTokenAlreadyMinted
			}
			return nil, repo.SetOwner(ctx, token, tokenID, to)
		},
	)
	return err
}

// GetBalance returns the fungible balance of owner.
func (s *Service) GetBalance(
	ctx context.Context, token, owner common.Address,
) (*uint256.Int, error) {
	return s.repoManager.BalanceRepository().GetBalance(ctx, token, owner)
}

// GetOwner returns the owner of a non fungible token instance.
func (s *Service) GetOwner(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
) (common.Address, error) {
	return s.repoManager.BalanceRepository().GetOwner(ctx, token, tokenID)
}
