package signature

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

// Service validates signatures of order hashes against a claimed signer.
// It is polymorphic over the scheme tag trailing every signature.
type Service struct {
	repoManager ports.RepoManager

	lock       *sync.RWMutex
	wallets    map[common.Address]ports.Wallet
	validators map[common.Address]ports.SignatureValidator
}

func NewService(repoManager ports.RepoManager) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	return &Service{
		repoManager: repoManager,
		lock:        &sync.RWMutex{},
		wallets:     make(map[common.Address]ports.Wallet),
		validators:  make(map[common.Address]ports.SignatureValidator),
	}, nil
}

// RegisterWallet binds the validation logic owned by the given signer
// identity, used for Wallet signatures.
func (s *Service) RegisterWallet(signer common.Address, wallet ports.Wallet) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.wallets[signer] = wallet
}

// RegisterValidator binds third-party validation logic to the given
// identity. Signers must approve it before it is used for their Validator
// signatures.
func (s *Service) RegisterValidator(
	addr common.Address, validator ports.SignatureValidator,
) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.validators[addr] = validator
}

// IsValidSignature returns whether signature is a valid signature of hash
// by signer. Malformed or non-matching signatures are reported as not
// valid, an error is returned only for structurally broken signatures, ie.
// empty, of illegal type or with the wrong length for their type.
func (s *Service) IsValidSignature(
	ctx context.Context, hash common.Hash, signer common.Address,
	signature []byte,
) (bool, error) {
	if len(signature) <= 0 {
		return false, domain.ErrSignatureEmpty
	}

	sigType := SignatureType(signature[len(signature)-1])
	payload := signature[:len(signature)-1]

	switch sigType {
	case SignatureTypeInvalid:
		if len(payload) != 0 {
			return false, domain.ErrSignatureInvalidLength
		}
		return false, nil

	case SignatureTypeEIP712:
		if len(payload) != ecSignatureLength {
			return false, domain.ErrSignatureInvalidLength
		}
		return recoversTo(hash.Bytes(), payload, signer), nil

	case SignatureTypeEthSign:
		if len(payload) != ecSignatureLength {
			return false, domain.ErrSignatureInvalidLength
		}
		prefixedHash := crypto.Keccak256([]byte(ethSignPrefix), hash.Bytes())
		return recoversTo(prefixedHash, payload, signer), nil

	case SignatureTypeWallet:
		wallet := s.getWallet(signer)
		if wallet == nil {
			log.WithField("signer", signer.Hex()).Debug("no wallet registered for signer")
			return false, nil
		}
		return wallet.IsValidSignature(ctx, hash, payload)

	case SignatureTypeValidator:
		if len(payload) < common.AddressLength {
			return false, domain.ErrSignatureInvalidLength
		}
		validatorAddr := common.BytesToAddress(
			payload[len(payload)-common.AddressLength:],
		)
		approved, err := s.repoManager.SignatureRepository().IsValidatorApproved(
			ctx, signer, validatorAddr,
		)
		if err != nil {
			return false, err
		}
		if !approved {
			return false, nil
		}
		validator := s.getValidator(validatorAddr)
		if validator == nil {
			log.WithField("validator", validatorAddr.Hex()).Debug(
				"approved validator is not registered",
			)
			return false, nil
		}
		return validator.IsValidSignature(
			ctx, hash, signer, payload[:len(payload)-common.AddressLength],
		)

	case SignatureTypePreSigned:
		return s.repoManager.SignatureRepository().IsPreSigned(ctx, hash, signer)

	default:
		return false, domain.ErrSignatureIllegal
	}
}

func (s *Service) getWallet(addr common.Address) ports.Wallet {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.wallets[addr]
}

func (s *Service) getValidator(addr common.Address) ports.SignatureValidator {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.validators[addr]
}

// recoversTo returns whether the v||r||s signature of digest recovers to the
// given address. Only v values 27 and 28 are accepted.
func recoversTo(digest, sig []byte, signer common.Address) bool {
	v := sig[0]
	if v != 27 && v != 28 {
		return false
	}

	pubkey, _, err := ecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return false
	}
	return PubkeyToAddress(pubkey) == signer
}

// PubkeyToAddress returns the identity of the given public key, that is the
// last 20 bytes of the keccak256 hash of its uncompressed serialization.
func PubkeyToAddress(pubkey *btcec.PublicKey) common.Address {
	serialized := pubkey.SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(serialized[1:])[12:])
}
