package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet is the validation logic owned by a signer identity. It is used for
// signatures of type Wallet, where the signer itself decides whether a
// signature is valid.
type Wallet interface {
	IsValidSignature(ctx context.Context, hash common.Hash, signature []byte) (bool, error)
}

// SignatureValidator is third-party validation logic that a signer can
// approve to validate signatures on its behalf.
type SignatureValidator interface {
	IsValidSignature(
		ctx context.Context, hash common.Hash, signer common.Address,
		signature []byte,
	) (bool, error)
}
