package domain_test

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

/*
 * LedgerRepository
 */
type mockLedgerRepository struct {
	mock.Mock
}

func (m *mockLedgerRepository) GetFilledAmount(
	ctx context.Context, hash domain.OrderHash,
) (*uint256.Int, error) {
	args := m.Called(ctx, hash)

	var res *uint256.Int
	if a := args.Get(0); a != nil {
		res = a.(*uint256.Int)
	}
	return res, args.Error(1)
}

func (m *mockLedgerRepository) SetFilledAmount(
	ctx context.Context, hash domain.OrderHash, amount *uint256.Int,
) error {
	args := m.Called(ctx, hash, amount)
	return args.Error(0)
}

func (m *mockLedgerRepository) IsCancelled(
	ctx context.Context, hash domain.OrderHash,
) (bool, error) {
	args := m.Called(ctx, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedgerRepository) SetCancelled(
	ctx context.Context, hash domain.OrderHash,
) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

func (m *mockLedgerRepository) GetMakerEpoch(
	ctx context.Context, maker common.Address,
) (*uint256.Int, error) {
	args := m.Called(ctx, maker)

	var res *uint256.Int
	if a := args.Get(0); a != nil {
		res = a.(*uint256.Int)
	}
	return res, args.Error(1)
}

func (m *mockLedgerRepository) SetMakerEpoch(
	ctx context.Context, maker common.Address, epoch *uint256.Int,
) error {
	args := m.Called(ctx, maker, epoch)
	return args.Error(0)
}
