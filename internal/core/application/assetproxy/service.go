package assetproxy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

// Service dispatches asset transfers to the adapter registered for the tag
// leading every asset descriptor.
type Service struct {
	repoManager ports.RepoManager

	lock    *sync.RWMutex
	proxies map[domain.AssetProxyID]ports.AssetProxy
}

// NewService returns a dispatcher with the given adapters registered.
func NewService(
	repoManager ports.RepoManager, proxies ...ports.AssetProxy,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}

	svc := &Service{
		repoManager: repoManager,
		lock:        &sync.RWMutex{},
		proxies:     make(map[domain.AssetProxyID]ports.AssetProxy),
	}
	for _, proxy := range proxies {
		if err := svc.RegisterAssetProxy(proxy); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// NewDefaultService returns a dispatcher with the fungible and non fungible
// token adapters registered.
func NewDefaultService(repoManager ports.RepoManager) (*Service, error) {
	return NewService(
		repoManager, NewERC20Proxy(repoManager), NewERC721Proxy(repoManager),
	)
}

// RegisterAssetProxy adds an adapter to the registry. Adapters can't be
// replaced once registered.
func (s *Service) RegisterAssetProxy(proxy ports.AssetProxy) error {
	if proxy == nil {
		return fmt.Errorf("missing asset proxy")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	id := proxy.GetProxyID()
	if _, ok := s.proxies[id]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAssetProxyAlreadyExists, id)
	}
	s.proxies[id] = proxy

	log.Debugf("registered asset proxy %s", id)
	return nil
}

// GetAssetProxy returns the adapter registered for the given tag.
func (s *Service) GetAssetProxy(id domain.AssetProxyID) (ports.AssetProxy, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	proxy, ok := s.proxies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetProxyNotFound, id)
	}
	return proxy, nil
}

// GetProxyIDs returns the sorted tags of all registered adapters.
func (s *Service) GetProxyIDs() []domain.AssetProxyID {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]domain.AssetProxyID, 0, len(s.proxies))
	for id := range s.proxies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DispatchTransferFrom routes the transfer to the right adapter within the
// transaction carried by ctx. It must be used by callers that are already
// running a transition, like the exchange.
func (s *Service) DispatchTransferFrom(
	ctx context.Context, assetData []byte, from, to common.Address,
	amount *uint256.Int,
) error {
	id, err := domain.GetAssetProxyID(assetData)
	if err != nil {
		return err
	}
	proxy, err := s.GetAssetProxy(id)
	if err != nil {
		return err
	}
	if proxy.GetProxyID() != id {
		return domain.ErrAssetProxyMismatch
	}
	return proxy.TransferFrom(ctx, assetData, from, to, amount)
}

// TransferFrom atomically transfers a single asset.
func (s *Service) TransferFrom(
	ctx context.Context, assetData []byte, from, to common.Address,
	amount *uint256.Int,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.DispatchTransferFrom(ctx, assetData, from, to, amount)
		},
	)
	return err
}

// BatchTransferFrom atomically transfers many assets described by parallel
// sequences of equal length. The first failing transfer aborts the whole
// batch and none of the others take effect.
func (s *Service) BatchTransferFrom(
	ctx context.Context, assetData [][]byte, from, to []common.Address,
	amounts []*uint256.Int,
) error {
	count := len(assetData)
	if len(from) != count || len(to) != count || len(amounts) != count {
		return domain.ErrBatchLengthMismatch
	}

	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			for i := 0; i < count; i++ {
				if err := s.DispatchTransferFrom(
					ctx, assetData[i], from[i], to[i], amounts[i],
				); err != nil {
					return nil, fmt.Errorf("transfer %d: %w", i, err)
				}
			}
			return nil, nil
		},
	)
	return err
}
