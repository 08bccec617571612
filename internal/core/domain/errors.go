package domain

import "errors"

// Hard errors abort the whole transition and discard every effect performed
// so far within it.
var (
	// ErrInvalidTaker is returned when filling an order restricted to a
	// different taker.
	ErrInvalidTaker = errors.New("order can be filled only by the designated taker")
	// ErrInvalidSender is returned when an order restricted to a sender is
	// operated by somebody else.
	ErrInvalidSender = errors.New("order can be operated only by the designated sender")
	// ErrInvalidTakerAmount is returned when requesting to fill zero units of
	// an order.
	ErrInvalidTakerAmount = errors.New("requested taker fill amount must be greater than zero")
	// ErrInvalidOrderAmounts is returned when cancelling an order with zero
	// maker or taker amount.
	ErrInvalidOrderAmounts = errors.New("order maker and taker amounts must be greater than zero")
	// ErrInvalidMaker is returned when somebody different from the maker
	// tries to cancel an order.
	ErrInvalidMaker = errors.New("order can be cancelled only by its maker")
	// ErrInvalidNewEpoch is returned when the new epoch of a maker is not
	// greater than the current one.
	ErrInvalidNewEpoch = errors.New("new epoch must be greater than the current one")
	// ErrFillOverflow is returned if recording a fill would exceed the order
	// taker amount.
	ErrFillOverflow = errors.New("filled amount would exceed order taker amount")
	// ErrMissingFeeAsset is returned when settling an order with non-zero fees
	// on an exchange that has no fee asset configured.
	ErrMissingFeeAsset = errors.New("fee asset is not configured")

	// ErrInvalidAssetDataLength is returned for asset descriptors whose length
	// does not match the layout expected by the adapter.
	ErrInvalidAssetDataLength = errors.New("invalid asset data length")
	// ErrAssetProxyMismatch is returned when the descriptor tag does not match
	// the adapter handling it.
	ErrAssetProxyMismatch = errors.New("asset data proxy id does not match asset proxy")
	// ErrAssetProxyNotFound is returned when no adapter is registered for the
	// descriptor tag.
	ErrAssetProxyNotFound = errors.New("asset proxy not registered")
	// ErrAssetProxyAlreadyExists ...
	ErrAssetProxyAlreadyExists = errors.New("asset proxy already registered")
	// ErrInvalidNonFungibleAmount is returned when transferring a non fungible
	// token with an amount different from 1.
	ErrInvalidNonFungibleAmount = errors.New("non fungible transfer amount must be 1")
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNotTokenOwner is returned when the sender of a non fungible transfer
	// does not own the token.
	ErrNotTokenOwner = errors.New("sender is not the owner of the token")
	// ErrInvalidTokenRecipient is returned when assigning a non fungible
	// token to the zero address.
	ErrInvalidTokenRecipient = errors.New("token recipient must not be the zero address")
	// ErrTokenAlreadyMinted ...
	ErrTokenAlreadyMinted = errors.New("token already minted")
	// ErrBatchLengthMismatch is returned when the parallel sequences of a
	// batch transfer have different lengths.
	ErrBatchLengthMismatch = errors.New("batch transfer arguments must have equal lengths")

	// ErrSignatureEmpty ...
	ErrSignatureEmpty = errors.New("signature must not be empty")
	// ErrSignatureIllegal is returned for signatures of type Illegal or of an
	// unknown type.
	ErrSignatureIllegal = errors.New("illegal signature type")
	// ErrSignatureInvalidLength is returned for signatures whose length does
	// not match their type.
	ErrSignatureInvalidLength = errors.New("invalid signature length")
	// ErrInvalidPreSignSignature is returned when pre-signing a hash on behalf
	// of a signer without a valid signature of theirs.
	ErrInvalidPreSignSignature = errors.New("invalid pre-sign signature")
)
