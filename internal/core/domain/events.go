package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Event is emitted by the exchange for every committed transition or soft
// failure.
type Event interface {
	Topic() string
}

const (
	FillTopic           = "FILL"
	CancelTopic         = "CANCEL"
	CancelUpToTopic     = "CANCEL_UP_TO"
	ExchangeStatusTopic = "EXCHANGE_STATUS"
)

// FillEvent is emitted when an order is (partially) filled.
type FillEvent struct {
	MakerAddress        common.Address
	TakerAddress        common.Address
	FeeRecipientAddress common.Address
	MakerAssetData      []byte
	TakerAssetData      []byte
	FillResults         FillResults
	OrderHash           OrderHash
}

func (FillEvent) Topic() string { return FillTopic }

// CancelEvent is emitted when an order is explicitly cancelled.
type CancelEvent struct {
	MakerAddress        common.Address
	FeeRecipientAddress common.Address
	MakerAssetData      []byte
	TakerAssetData      []byte
	OrderHash           OrderHash
}

func (CancelEvent) Topic() string { return CancelTopic }

// CancelUpToEvent is emitted when a maker bumps its epoch.
type CancelUpToEvent struct {
	MakerAddress common.Address
	OrderEpoch   *uint256.Int
}

func (CancelUpToEvent) Topic() string { return CancelUpToTopic }

// ExchangeStatusEvent signals a soft failure for an order.
type ExchangeStatusEvent struct {
	Status    ExchangeStatus
	OrderHash OrderHash
}

func (ExchangeStatusEvent) Topic() string { return ExchangeStatusTopic }
