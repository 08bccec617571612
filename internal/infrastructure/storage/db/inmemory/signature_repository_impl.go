package inmemory

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

type preSignKey struct {
	hash   common.Hash
	signer common.Address
}

type approvalKey struct {
	signer    common.Address
	validator common.Address
}

type signatureStore struct {
	preSigned map[preSignKey]bool
	approvals map[approvalKey]bool
}

func newSignatureStore() *signatureStore {
	return &signatureStore{
		preSigned: make(map[preSignKey]bool),
		approvals: make(map[approvalKey]bool),
	}
}

type signatureRepositoryImpl struct {
	store *store
}

func newSignatureRepositoryImpl(s *store) domain.SignatureRepository {
	return &signatureRepositoryImpl{s}
}

func (r *signatureRepositoryImpl) IsPreSigned(
	ctx context.Context, hash common.Hash, signer common.Address,
) (bool, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	return r.store.signatures.preSigned[preSignKey{hash, signer}], nil
}

func (r *signatureRepositoryImpl) SetPreSigned(
	ctx context.Context, hash common.Hash, signer common.Address,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	key := preSignKey{hash, signer}
	preSigned := r.store.signatures.preSigned
	if tx != nil && !preSigned[key] {
		tx.record(func() { delete(preSigned, key) })
	}
	preSigned[key] = true
	return nil
}

func (r *signatureRepositoryImpl) IsValidatorApproved(
	ctx context.Context, signer, validator common.Address,
) (bool, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	return r.store.signatures.approvals[approvalKey{signer, validator}], nil
}

func (r *signatureRepositoryImpl) SetValidatorApproval(
	ctx context.Context, signer, validator common.Address, approved bool,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	key := approvalKey{signer, validator}
	approvals := r.store.signatures.approvals
	if tx != nil {
		prev, existed := approvals[key]
		tx.record(func() {
			if existed {
				approvals[key] = prev
				return
			}
			delete(approvals, key)
		})
	}
	approvals[key] = approved
	return nil
}
