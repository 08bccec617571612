package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/core/application/assetproxy"
	"github.com/tdex-network/tdex-settlement/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-settlement/internal/core/application/signature"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
	"github.com/tdex-network/tdex-settlement/pkg/stats"
)

// Config holds the parameters of an exchange instance.
type Config struct {
	// ExchangeAddress is the verifying identity bound into every order hash.
	ExchangeAddress common.Address
	// FeeAssetData is the descriptor of the asset fees are paid in. It can be
	// left empty only if no order with non-zero fees is ever filled.
	FeeAssetData []byte
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Stats is optional.
	Stats *stats.Collector
}

// Service is the exchange core. It evaluates order statuses, settles fills
// and records cancellations.
//
// Every state-changing operation runs as a single transaction: either all
// its effects are committed or none is. Soft failures are reported as an
// ExchangeStatus other than StatusSuccess and leave the state untouched,
// hard failures are returned as errors and roll back any effect performed
// so far. Events are published only after the transaction committed.
type Service struct {
	repoManager  ports.RepoManager
	assetProxies *assetproxy.Service
	signatures   *signature.Service
	pubsub       *pubsub.Service

	hasher       domain.OrderHasher
	feeAssetData []byte
	now          func() time.Time
	stats        *stats.Collector

	lock *sync.Mutex
}

func NewService(
	repoManager ports.RepoManager,
	assetProxySvc *assetproxy.Service,
	signatureSvc *signature.Service,
	pubsubSvc *pubsub.Service,
	cfg Config,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if assetProxySvc == nil {
		return nil, fmt.Errorf("missing asset proxy service")
	}
	if signatureSvc == nil {
		return nil, fmt.Errorf("missing signature service")
	}
	if len(cfg.FeeAssetData) > 0 {
		id, err := domain.GetAssetProxyID(cfg.FeeAssetData)
		if err != nil {
			return nil, fmt.Errorf("invalid fee asset: %w", err)
		}
		if _, err := assetProxySvc.GetAssetProxy(id); err != nil {
			return nil, fmt.Errorf("invalid fee asset: %w", err)
		}
	}
	if pubsubSvc == nil {
		pubsubSvc = pubsub.NewService(nil)
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Service{
		repoManager:  repoManager,
		assetProxies: assetProxySvc,
		signatures:   signatureSvc,
		pubsub:       pubsubSvc,
		hasher:       domain.NewOrderHasher(cfg.ExchangeAddress),
		feeAssetData: cfg.FeeAssetData,
		now:          now,
		stats:        cfg.Stats,
		lock:         &sync.Mutex{},
	}, nil
}

// GetOrderHash returns the hash identifying the order on this exchange.
func (s *Service) GetOrderHash(order domain.Order) domain.OrderHash {
	return s.hasher.Hash(order)
}

// GetOrderInfo returns the current status of the order without mutating
// any state.
func (s *Service) GetOrderInfo(
	ctx context.Context, order domain.Order, signature []byte,
) (*domain.OrderInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.getOrderInfo(ctx, order, signature)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.OrderInfo), nil
}

// FillOrder fills up to takerFillAmount units of the order taker asset on
// behalf of caller.
//
// The returned status tells whether the fill happened: on soft failure it
// is the reason the order could not be filled and the fill results are all
// zeros. Any returned error means that nothing changed.
func (s *Service) FillOrder(
	ctx context.Context, caller common.Address, order domain.Order,
	takerFillAmount *uint256.Int, signature []byte,
) (*domain.FillResults, domain.ExchangeStatus, error) {
	if takerFillAmount == nil {
		takerFillAmount = new(uint256.Int)
	}

	res, err := s.runTransition(
		ctx, func(ctx context.Context) (interface{}, error) {
			return s.fillOrder(ctx, caller, order, takerFillAmount, signature)
		},
	)
	if err != nil {
		s.observeHardFailure("fill")
		log.WithError(err).Debug("fill order aborted")
		return nil, 0, err
	}

	outcome := res.(*fillOutcome)
	s.observeFill(outcome.status)

	if !outcome.status.IsSuccess() {
		s.pubsub.PublishEvents([]domain.Event{
			domain.ExchangeStatusEvent{
				Status:    outcome.status,
				OrderHash: outcome.hash,
			},
		})
		return domain.NewEmptyFillResults(), outcome.status, nil
	}

	log.WithFields(log.Fields{
		"order_hash":   outcome.hash.Hex(),
		"taker":        caller.Hex(),
		"taker_amount": mathutil.ToString(outcome.results.TakerAssetFilledAmount),
		"maker_amount": mathutil.ToString(outcome.results.MakerAssetFilledAmount),
	}).Info("order filled")

	s.pubsub.PublishEvents([]domain.Event{
		domain.FillEvent{
			MakerAddress:        order.MakerAddress,
			TakerAddress:        caller,
			FeeRecipientAddress: order.FeeRecipientAddress,
			MakerAssetData:      order.MakerAssetData,
			TakerAssetData:      order.TakerAssetData,
			FillResults:         *outcome.results,
			OrderHash:           outcome.hash,
		},
	})

	return outcome.results, domain.StatusSuccess, nil
}

// CancelOrder flags the order as cancelled. Only the maker of the order can
// cancel it, and only through its designated sender if any.
// It returns false along with the reason if the order was already expired,
// fully filled or cancelled.
func (s *Service) CancelOrder(
	ctx context.Context, caller common.Address, order domain.Order,
) (bool, domain.ExchangeStatus, error) {
	res, err := s.runTransition(
		ctx, func(ctx context.Context) (interface{}, error) {
			return s.cancelOrder(ctx, caller, order)
		},
	)
	if err != nil {
		s.observeHardFailure("cancel")
		log.WithError(err).Debug("cancel order aborted")
		return false, 0, err
	}

	outcome := res.(*cancelOutcome)
	s.observeCancel(outcome.status)

	if !outcome.status.IsSuccess() {
		s.pubsub.PublishEvents([]domain.Event{
			domain.ExchangeStatusEvent{
				Status:    outcome.status,
				OrderHash: outcome.hash,
			},
		})
		return false, outcome.status, nil
	}

	log.WithField("order_hash", outcome.hash.Hex()).Info("order cancelled")

	s.pubsub.PublishEvents([]domain.Event{
		domain.CancelEvent{
			MakerAddress:        order.MakerAddress,
			FeeRecipientAddress: order.FeeRecipientAddress,
			MakerAssetData:      order.MakerAssetData,
			TakerAssetData:      order.TakerAssetData,
			OrderHash:           outcome.hash,
		},
	})

	return true, domain.StatusSuccess, nil
}

// CancelOrdersUpTo cancels every order of caller whose salt is lower or
// equal to targetSalt by setting the maker epoch to targetSalt+1.
func (s *Service) CancelOrdersUpTo(
	ctx context.Context, caller common.Address, targetSalt *uint256.Int,
) (*uint256.Int, error) {
	if targetSalt == nil {
		targetSalt = new(uint256.Int)
	}
	newEpoch, err := mathutil.Add(targetSalt, uint256.NewInt(1))
	if err != nil {
		s.observeHardFailure("cancel_up_to")
		return nil, err
	}

	if _, err := s.runTransition(
		ctx, func(ctx context.Context) (interface{}, error) {
			ledger := domain.NewLedger(s.repoManager.LedgerRepository())
			return nil, ledger.BumpEpoch(ctx, caller, newEpoch)
		},
	); err != nil {
		s.observeHardFailure("cancel_up_to")
		return nil, err
	}

	if s.stats != nil {
		s.stats.ObserveEpochBump()
	}

	log.WithFields(log.Fields{
		"maker": caller.Hex(),
		"epoch": mathutil.ToString(newEpoch),
	}).Info("orders cancelled up to epoch")

	s.pubsub.PublishEvents([]domain.Event{
		domain.CancelUpToEvent{
			MakerAddress: caller,
			OrderEpoch:   newEpoch.Clone(),
		},
	})

	return newEpoch, nil
}

// PreSign marks hash as approved by signer. If caller is not the signer,
// signature must be a valid signature of hash by signer.
func (s *Service) PreSign(
	ctx context.Context, caller common.Address, hash common.Hash,
	signer common.Address, signature []byte,
) error {
	_, err := s.runTransition(
		ctx, func(ctx context.Context) (interface{}, error) {
			if caller != signer {
				ok, err := s.signatures.IsValidSignature(
					ctx, hash, signer, signature,
				)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, domain.ErrInvalidPreSignSignature
				}
			}
			return nil, s.repoManager.SignatureRepository().SetPreSigned(
				ctx, hash, signer,
			)
		},
	)
	if err != nil {
		s.observeHardFailure("presign")
		return err
	}

	log.WithFields(log.Fields{
		"hash":   hash.Hex(),
		"signer": signer.Hex(),
	}).Debug("hash pre-signed")
	return nil
}

// SetSignatureValidatorApproval approves or revokes validator for the
// signatures of caller.
func (s *Service) SetSignatureValidatorApproval(
	ctx context.Context, caller, validator common.Address, approval bool,
) error {
	_, err := s.runTransition(
		ctx, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.SignatureRepository().SetValidatorApproval(
				ctx, caller, validator, approval,
			)
		},
	)
	if err != nil {
		s.observeHardFailure("approve_validator")
		return err
	}

	log.WithFields(log.Fields{
		"signer":    caller.Hex(),
		"validator": validator.Hex(),
		"approved":  approval,
	}).Debug("signature validator approval updated")
	return nil
}

// Close releases the pubsub and logs the collected statistics.
func (s *Service) Close() {
	s.pubsub.Close()
	if s.stats != nil {
		s.stats.PrintStatistics()
	}
}

// runTransition runs handler as a write transaction, serialized with any
// other transition. The lock is released before returning, therefore
// events are always published outside of it.
func (s *Service) runTransition(
	ctx context.Context, handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.repoManager.RunTransaction(ctx, false, handler)
}

type fillOutcome struct {
	hash    domain.OrderHash
	status  domain.ExchangeStatus
	results *domain.FillResults
}

type cancelOutcome struct {
	hash   domain.OrderHash
	status domain.ExchangeStatus
}

func (s *Service) getOrderInfo(
	ctx context.Context, order domain.Order, signature []byte,
) (*domain.OrderInfo, error) {
	hash := s.hasher.Hash(order)
	ledger := domain.NewLedger(s.repoManager.LedgerRepository())

	state, err := ledger.GetOrderState(ctx, hash, order.MakerAddress)
	if err != nil {
		return nil, err
	}

	return domain.GetOrderInfo(
		order, hash, *state, s.now(), func() (bool, error) {
			return s.signatures.IsValidSignature(
				ctx, hash, order.MakerAddress, signature,
			)
		},
	)
}

func (s *Service) fillOrder(
	ctx context.Context, caller common.Address, order domain.Order,
	takerFillAmount *uint256.Int, signature []byte,
) (*fillOutcome, error) {
	info, err := s.getOrderInfo(ctx, order, signature)
	if err != nil {
		return nil, err
	}
	if !info.Status.IsFillable() {
		return &fillOutcome{
			hash:   info.Hash,
			status: info.Status.ExchangeStatus(),
		}, nil
	}

	if order.IsSenderRestricted() && order.SenderAddress != caller {
		return nil, domain.ErrInvalidSender
	}

	status, results, err := domain.CalculateFillResults(
		order, info.TakerAssetFilledAmount, takerFillAmount, caller,
	)
	if err != nil {
		return nil, err
	}
	if !status.IsSuccess() {
		return &fillOutcome{hash: info.Hash, status: status}, nil
	}

	ledger := domain.NewLedger(s.repoManager.LedgerRepository())
	filled, err := ledger.RecordFill(
		ctx, info.Hash, results.TakerAssetFilledAmount,
	)
	if err != nil {
		return nil, err
	}
	if filled.Gt(&order.TakerAssetAmount) {
		return nil, domain.ErrFillOverflow
	}

	if err := s.settleOrder(ctx, order, caller, results); err != nil {
		return nil, err
	}

	return &fillOutcome{
		hash:    info.Hash,
		status:  domain.StatusSuccess,
		results: results,
	}, nil
}

// settleOrder moves the filled amounts and the fees, in this order:
// maker asset from maker to taker, taker asset from taker to maker, maker
// fee from maker to fee recipient, taker fee from taker to fee recipient.
func (s *Service) settleOrder(
	ctx context.Context, order domain.Order, taker common.Address,
	results *domain.FillResults,
) error {
	if err := s.assetProxies.DispatchTransferFrom(
		ctx, order.MakerAssetData, order.MakerAddress, taker,
		results.MakerAssetFilledAmount,
	); err != nil {
		return fmt.Errorf("maker asset transfer: %w", err)
	}
	if err := s.assetProxies.DispatchTransferFrom(
		ctx, order.TakerAssetData, taker, order.MakerAddress,
		results.TakerAssetFilledAmount,
	); err != nil {
		return fmt.Errorf("taker asset transfer: %w", err)
	}

	fees := []struct {
		name   string
		from   common.Address
		amount *uint256.Int
	}{
		{"maker", order.MakerAddress, results.MakerFeePaid},
		{"taker", taker, results.TakerFeePaid},
	}
	for _, fee := range fees {
		if fee.amount.IsZero() {
			continue
		}
		if len(s.feeAssetData) <= 0 {
			return domain.ErrMissingFeeAsset
		}
		if err := s.assetProxies.DispatchTransferFrom(
			ctx, s.feeAssetData, fee.from, order.FeeRecipientAddress, fee.amount,
		); err != nil {
			return fmt.Errorf("%s fee transfer: %w", fee.name, err)
		}
	}
	return nil
}

func (s *Service) cancelOrder(
	ctx context.Context, caller common.Address, order domain.Order,
) (*cancelOutcome, error) {
	if !order.HasValidAmounts() {
		return nil, domain.ErrInvalidOrderAmounts
	}
	if order.IsSenderRestricted() && order.SenderAddress != caller {
		return nil, domain.ErrInvalidSender
	}
	if order.MakerAddress != caller {
		return nil, domain.ErrInvalidMaker
	}

	hash := s.hasher.Hash(order)
	ledger := domain.NewLedger(s.repoManager.LedgerRepository())
	state, err := ledger.GetOrderState(ctx, hash, order.MakerAddress)
	if err != nil {
		return nil, err
	}

	// The maker is cancelling its own order, there's no signature to verify.
	info, err := domain.GetOrderInfo(
		order, hash, *state, s.now(), func() (bool, error) { return true, nil },
	)
	if err != nil {
		return nil, err
	}
	if !info.Status.IsFillable() {
		return &cancelOutcome{
			hash:   hash,
			status: info.Status.ExchangeStatus(),
		}, nil
	}

	if err := ledger.RecordCancel(ctx, hash); err != nil {
		return nil, err
	}
	return &cancelOutcome{hash: hash, status: domain.StatusSuccess}, nil
}

func (s *Service) observeFill(status domain.ExchangeStatus) {
	if s.stats != nil {
		s.stats.ObserveFill(status.String())
	}
}

func (s *Service) observeCancel(status domain.ExchangeStatus) {
	if s.stats != nil {
		s.stats.ObserveCancel(status.String())
	}
}

func (s *Service) observeHardFailure(operation string) {
	if s.stats != nil {
		s.stats.ObserveHardFailure(operation)
	}
}
