package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// LedgerRepository is the abstraction for any kind of database intended to
// persist the fill and cancellation state of orders. Entries are created
// lazily and never deleted: a missing entry reads as zero/false.
type LedgerRepository interface {
	// GetFilledAmount returns the cumulative taker asset amount filled for
	// the given order.
	GetFilledAmount(ctx context.Context, hash OrderHash) (*uint256.Int, error)
	// SetFilledAmount overwrites the filled amount of an order.
	SetFilledAmount(ctx context.Context, hash OrderHash, amount *uint256.Int) error
	// IsCancelled returns whether the order has been explicitly cancelled.
	IsCancelled(ctx context.Context, hash OrderHash) (bool, error)
	// SetCancelled flags the order as cancelled.
	SetCancelled(ctx context.Context, hash OrderHash) error
	// GetMakerEpoch returns the current epoch of the maker.
	GetMakerEpoch(ctx context.Context, maker common.Address) (*uint256.Int, error)
	// SetMakerEpoch overwrites the epoch of the maker.
	SetMakerEpoch(ctx context.Context, maker common.Address, epoch *uint256.Int) error
}

// SignatureRepository persists the signature approvals given by signers
// directly to the exchange.
type SignatureRepository interface {
	// IsPreSigned returns whether signer has pre-approved the given hash.
	IsPreSigned(ctx context.Context, hash common.Hash, signer common.Address) (bool, error)
	// SetPreSigned records the pre-approval of the hash by signer.
	SetPreSigned(ctx context.Context, hash common.Hash, signer common.Address) error
	// IsValidatorApproved returns whether signer allows validator to validate
	// signatures on its behalf.
	IsValidatorApproved(ctx context.Context, signer, validator common.Address) (bool, error)
	// SetValidatorApproval approves or revokes a validator for signer.
	SetValidatorApproval(
		ctx context.Context, signer, validator common.Address, approved bool,
	) error
}

// BalanceRepository persists the holdings the asset adapters operate on.
type BalanceRepository interface {
	// GetBalance returns the amount of fungible token held by owner.
	GetBalance(ctx context.Context, token, owner common.Address) (*uint256.Int, error)
	// SetBalance overwrites the amount of fungible token held by owner.
	SetBalance(ctx context.Context, token, owner common.Address, amount *uint256.Int) error
	// GetOwner returns the owner of a non fungible token instance, or the zero
	// address if it doesn't exist.
	GetOwner(ctx context.Context, token common.Address, tokenID *uint256.Int) (common.Address, error)
	// SetOwner overwrites the owner of a non fungible token instance.
	SetOwner(ctx context.Context, token common.Address, tokenID *uint256.Int, owner common.Address) error
}
