package domain

// OrderStatus is the status of an order derived from its fields and the
// ledger. It is never stored.
type OrderStatus uint8

const (
	// OrderStatusInvalid is for orders with zero maker or taker amount.
	OrderStatusInvalid OrderStatus = iota
	OrderStatusSignatureInvalid
	OrderStatusExpired
	OrderStatusFullyFilled
	OrderStatusCancelled
	OrderStatusFillable
)

var orderStatusToString = map[OrderStatus]string{
	OrderStatusInvalid:          "INVALID",
	OrderStatusSignatureInvalid: "SIGNATURE_INVALID",
	OrderStatusExpired:          "EXPIRED",
	OrderStatusFullyFilled:      "FULLY_FILLED",
	OrderStatusCancelled:        "CANCELLED",
	OrderStatusFillable:         "FILLABLE",
}

func (s OrderStatus) String() string {
	if str, ok := orderStatusToString[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFillable ...
func (s OrderStatus) IsFillable() bool {
	return s == OrderStatusFillable
}

// ExchangeStatus returns the business error code that must be reported for
// a non fillable order.
func (s OrderStatus) ExchangeStatus() ExchangeStatus {
	switch s {
	case OrderStatusInvalid:
		return StatusOrderInvalid
	case OrderStatusSignatureInvalid:
		return StatusOrderSignatureInvalid
	case OrderStatusExpired:
		return StatusOrderExpired
	case OrderStatusFullyFilled:
		return StatusOrderFullyFilled
	case OrderStatusCancelled:
		return StatusOrderCancelled
	default:
		return StatusSuccess
	}
}

// ExchangeStatus is the code of a soft, order-level, failure. Soft failures
// never abort a transition, they are reported to the caller and signaled
// with an ExchangeStatusEvent, leaving the state untouched.
type ExchangeStatus uint8

const (
	StatusSuccess ExchangeStatus = iota
	StatusOrderInvalid
	StatusOrderSignatureInvalid
	StatusOrderExpired
	StatusOrderFullyFilled
	StatusOrderCancelled
	StatusRoundingErrorTooLarge
)

var exchangeStatusToString = map[ExchangeStatus]string{
	StatusSuccess:               "SUCCESS",
	StatusOrderInvalid:          "ORDER_INVALID",
	StatusOrderSignatureInvalid: "ORDER_SIGNATURE_INVALID",
	StatusOrderExpired:          "ORDER_EXPIRED",
	StatusOrderFullyFilled:      "ORDER_FULLY_FILLED",
	StatusOrderCancelled:        "ORDER_CANCELLED",
	StatusRoundingErrorTooLarge: "ROUNDING_ERROR_TOO_LARGE",
}

func (s ExchangeStatus) String() string {
	if str, ok := exchangeStatusToString[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsSuccess ...
func (s ExchangeStatus) IsSuccess() bool {
	return s == StatusSuccess
}
