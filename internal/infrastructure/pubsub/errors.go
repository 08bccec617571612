package pubsub

import "errors"

var (
	// ErrSubscriptionNotFound ...
	ErrSubscriptionNotFound = errors.New("webhook not found")
	// ErrEndpointFailure is returned when a webhook endpoint does not accept
	// the notification.
	ErrEndpointFailure = errors.New("webhook endpoint failure")
)
