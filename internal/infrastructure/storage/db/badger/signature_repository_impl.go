package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type signatureRepositoryImpl struct {
	store *badgerhold.Store
}

func newSignatureRepositoryImpl(
	store *badgerhold.Store,
) domain.SignatureRepository {
	return signatureRepositoryImpl{store}
}

func (r signatureRepositoryImpl) IsPreSigned(
	ctx context.Context, hash common.Hash, signer common.Address,
) (bool, error) {
	found := false
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec preSignature
		key := pairKey(hash.Hex(), signer.Hex())
		if err := r.store.TxGet(tx, key, &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (r signatureRepositoryImpl) SetPreSigned(
	ctx context.Context, hash common.Hash, signer common.Address,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		key := pairKey(hash.Hex(), signer.Hex())
		return r.store.TxUpsert(tx, key, preSignature{
			Hash:   hash.Hex(),
			Signer: signer.Hex(),
		})
	})
}

func (r signatureRepositoryImpl) IsValidatorApproved(
	ctx context.Context, signer, validator common.Address,
) (bool, error) {
	approved := false
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec validatorApproval
		key := pairKey(signer.Hex(), validator.Hex())
		if err := r.store.TxGet(tx, key, &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		approved = rec.Approved
		return nil
	})
	return approved, err
}

func (r signatureRepositoryImpl) SetValidatorApproval(
	ctx context.Context, signer, validator common.Address, approved bool,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		key := pairKey(signer.Hex(), validator.Hex())
		return r.store.TxUpsert(tx, key, validatorApproval{
			Signer:    signer.Hex(),
			Validator: validator.Hex(),
			Approved:  approved,
		})
	})
}
