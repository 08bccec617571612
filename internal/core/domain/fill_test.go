package domain_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
	"pgregory.net/rapid"
)

func TestCalculateFillResults(t *testing.T) {
	tests := []struct {
		name             string
		order            domain.Order
		filled           uint64
		requested        uint64
		expectedStatus   domain.ExchangeStatus
		expectedMaker    uint64
		expectedTaker    uint64
		expectedMakerFee uint64
		expectedTakerFee uint64
	}{
		{
			name:             "partial_fill",
			order:            newTestOrder(),
			requested:        25,
			expectedStatus:   domain.StatusSuccess,
			expectedMaker:    50,
			expectedTaker:    25,
			expectedMakerFee: 5,
			expectedTakerFee: 2,
		},
		{
			name:             "full_fill",
			order:            newTestOrder(),
			requested:        50,
			expectedStatus:   domain.StatusSuccess,
			expectedMaker:    100,
			expectedTaker:    50,
			expectedMakerFee: 10,
			expectedTakerFee: 4,
		},
		{
			name:             "bounded_by_remaining_amount",
			order:            newTestOrder(),
			filled:           40,
			requested:        25,
			expectedStatus:   domain.StatusSuccess,
			expectedMaker:    20,
			expectedTaker:    10,
			expectedMakerFee: 2,
			expectedTakerFee: 0,
		},
		{
			name:           "nothing_left_to_fill",
			order:          newTestOrder(),
			filled:         50,
			requested:      1,
			expectedStatus: domain.StatusSuccess,
		},
		{
			name:           "rounding_error_too_large",
			order:          newOrderWithAmounts(10, 3),
			requested:      1,
			expectedStatus: domain.StatusRoundingErrorTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			status, res, err := domain.CalculateFillResults(
				tt.order, uint256.NewInt(tt.filled), uint256.NewInt(tt.requested),
				makerAddress,
			)
			require.NoError(t, err)
			require.NotNil(t, res)
			require.Equal(t, tt.expectedStatus, status)
			require.Equal(t, tt.expectedMaker, res.MakerAssetFilledAmount.Uint64())
			require.Equal(t, tt.expectedTaker, res.TakerAssetFilledAmount.Uint64())
			require.Equal(t, tt.expectedMakerFee, res.MakerFeePaid.Uint64())
			require.Equal(t, tt.expectedTakerFee, res.TakerFeePaid.Uint64())
		})
	}
}

func TestFailingCalculateFillResults(t *testing.T) {
	restrictedOrder := newTestOrder()
	restrictedOrder.TakerAddress = feeRecipient

	hugeOrder := newOrderWithAmounts(0, 3)
	hugeOrder.MakerAssetAmount.SetAllOne()

	tests := []struct {
		name        string
		order       domain.Order
		filled      uint64
		requested   uint64
		expectedErr error
	}{
		{
			name:        "with_invalid_taker",
			order:       restrictedOrder,
			requested:   10,
			expectedErr: domain.ErrInvalidTaker,
		},
		{
			name:        "with_zero_requested_amount",
			order:       newTestOrder(),
			expectedErr: domain.ErrInvalidTakerAmount,
		},
		{
			name:        "with_filled_exceeding_taker_amount",
			order:       newTestOrder(),
			filled:      51,
			requested:   1,
			expectedErr: mathutil.ErrUnderflow,
		},
		{
			name:        "with_overflowing_maker_amount",
			order:       hugeOrder,
			requested:   2,
			expectedErr: mathutil.ErrOverflow,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, res, err := domain.CalculateFillResults(
				tt.order, uint256.NewInt(tt.filled), uint256.NewInt(tt.requested),
				makerAddress,
			)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Nil(t, res)
		})
	}
}

func TestFillNeverExceedsOrderAmounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		makerAmount := rapid.Uint64Range(1, 1<<40).Draw(t, "makerAmount").(uint64)
		takerAmount := rapid.Uint64Range(1, 1<<40).Draw(t, "takerAmount").(uint64)
		filled := rapid.Uint64Range(0, takerAmount).Draw(t, "filled").(uint64)
		requested := rapid.Uint64Range(1, 1<<41).Draw(t, "requested").(uint64)

		order := newOrderWithAmounts(makerAmount, takerAmount)
		status, res, err := domain.CalculateFillResults(
			order, uint256.NewInt(filled), uint256.NewInt(requested), makerAddress,
		)
		require.NoError(t, err)

		if !status.IsSuccess() {
			require.Equal(t, domain.StatusRoundingErrorTooLarge, status)
			require.True(t, res.IsEmpty())
			return
		}

		remaining := takerAmount - filled
		expectedTaker := requested
		if remaining < expectedTaker {
			expectedTaker = remaining
		}
		require.Equal(t, expectedTaker, res.TakerAssetFilledAmount.Uint64())
		require.LessOrEqual(t, filled+res.TakerAssetFilledAmount.Uint64(), takerAmount)
		require.LessOrEqual(t, res.MakerAssetFilledAmount.Uint64(), makerAmount)
	})
}

func newOrderWithAmounts(makerAmount, takerAmount uint64) domain.Order {
	order := newTestOrder()
	order.MakerAssetAmount.SetUint64(makerAmount)
	order.TakerAssetAmount.SetUint64(takerAmount)
	order.MakerFee.Clear()
	order.TakerFee.Clear()
	return order
}
